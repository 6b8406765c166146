// Package tabular answers natural-language questions about in-memory
// tables by asking the model for a JavaScript expression over the table
// and evaluating it in a sandboxed interpreter.
package tabular

import (
	"fmt"
	"strings"
)

// Table is an in-memory column-ordered table. Rows are positional and
// share the column order.
type Table struct {
	Columns []string
	Rows    [][]interface{}
}

// NewTable creates a table and validates that every row matches the
// column count.
func NewTable(columns []string, rows [][]interface{}) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table must have at least one column")
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
	}
	return &Table{Columns: columns, Rows: rows}, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Head returns a table holding the first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// String renders the table as pipe-separated text, one line per row
// with a header line first.
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Columns, " | "))
	for _, row := range t.Rows {
		b.WriteString("\n")
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		b.WriteString(strings.Join(cells, " | "))
	}
	return b.String()
}

// records returns the rows as column-keyed maps, the shape the
// interpreter exposes to expressions.
func (t *Table) records() []map[string]interface{} {
	out := make([]map[string]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]interface{}, len(t.Columns))
		for j, col := range t.Columns {
			rec[col] = row[j]
		}
		out[i] = rec
	}
	return out
}

// jsView is the object bound as `table` inside the interpreter.
func (t *Table) jsView() map[string]interface{} {
	return map[string]interface{}{
		"columns": t.Columns,
		"rows":    t.records(),
		"numRows": len(t.Rows),
	}
}
