package tabular

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ragsynth/go-ragsynth/prompts"
	"github.com/ragsynth/go-ragsynth/service"
	"github.com/ragsynth/go-ragsynth/synthesizer"
)

const (
	// DefaultHeadRows is how many rows the model sees as a sample.
	DefaultHeadRows = 5

	// DefaultInstructionStr tells the model what shape of output to
	// produce for a table query.
	DefaultInstructionStr = `Convert the query to a single JavaScript expression over the variable ` + "`table`" + `.
` + "`table.rows`" + ` is an array of objects keyed by column name, ` + "`table.columns`" + ` is the column list, and ` + "`table.numRows`" + ` is the row count.
Return only the expression, with no explanation and no code fences.`

	// codeErrorPrefix opens the degraded answer produced when the
	// model's expression fails to run.
	codeErrorPrefix = "There was an error running the output as code. Error message: "
)

// ExtraInfoInstruction is the ExtraInfo key holding the expression the
// model produced for a table query.
const ExtraInfoInstruction = "instruction_str"

// ErrMissingTable reports construction without a table.
var ErrMissingTable = errors.New("tabular: table must not be nil")

// TableQueryEngine turns a natural-language query into a JavaScript
// expression over a table and evaluates it. An expression that fails to
// run degrades to a textual error answer instead of failing the query.
type TableQueryEngine struct {
	sctx           *service.Context
	table          *Table
	tablePrompt    prompts.BasePromptTemplate
	instructionStr string
	headRows       int
}

// EngineOption configures a TableQueryEngine.
type EngineOption func(*TableQueryEngine)

// WithTablePrompt overrides the table query template.
func WithTablePrompt(tmpl prompts.BasePromptTemplate) EngineOption {
	return func(e *TableQueryEngine) {
		e.tablePrompt = tmpl
	}
}

// WithInstructionStr overrides the expression-shaping instructions.
func WithInstructionStr(s string) EngineOption {
	return func(e *TableQueryEngine) {
		e.instructionStr = s
	}
}

// WithHeadRows sets how many sample rows the model sees.
func WithHeadRows(n int) EngineOption {
	return func(e *TableQueryEngine) {
		e.headRows = n
	}
}

// NewTableQueryEngine creates a TableQueryEngine over table.
func NewTableQueryEngine(sctx *service.Context, table *Table, opts ...EngineOption) (*TableQueryEngine, error) {
	if sctx == nil {
		return nil, fmt.Errorf("tabular: service context must not be nil")
	}
	if table == nil {
		return nil, ErrMissingTable
	}

	e := &TableQueryEngine{
		sctx:           sctx,
		table:          table,
		tablePrompt:    prompts.DefaultTableQueryPrompt,
		instructionStr: DefaultInstructionStr,
		headRows:       DefaultHeadRows,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.headRows < 0 {
		return nil, fmt.Errorf("tabular: head rows must not be negative, got %d", e.headRows)
	}
	return e, nil
}

// Query answers queryStr against the table. The model's expression is
// recorded on ExtraInfo whether or not it ran.
func (e *TableQueryEngine) Query(ctx context.Context, queryStr string) (*synthesizer.Response, error) {
	head := e.table.Head(e.headRows)

	completion, rendered, err := e.sctx.Predictor.Predict(ctx, e.tablePrompt, map[string]string{
		"head_rows":       strconv.Itoa(head.NumRows()),
		"table_str":       head.String(),
		"instruction_str": e.instructionStr,
		"query_str":       queryStr,
	})
	if err != nil {
		return nil, fmt.Errorf("tabular: instruction generation failed: %w", err)
	}

	instruction := extractExpression(completion)
	answer := e.runInstruction(ctx, instruction)

	return &synthesizer.Response{
		Response: answer,
		ExtraInfo: map[string]interface{}{
			ExtraInfoInstruction: instruction,
			synthesizer.ExtraInfoPromptCalls: []synthesizer.PromptCall{
				{Key: "table_query_0", Prompt: rendered},
			},
		},
	}, nil
}

// runInstruction evaluates the expression and degrades to a textual
// error answer when it cannot run.
func (e *TableQueryEngine) runInstruction(ctx context.Context, instruction string) string {
	value, err := evalExpression(ctx, e.table, instruction)
	if err != nil {
		return codeErrorPrefix + err.Error()
	}
	return value
}

// extractExpression trims the completion down to the bare expression,
// stripping code fences and an echoed "Expression:" label.
func extractExpression(completion string) string {
	s := strings.TrimSpace(completion)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if i := strings.Index(s, "\n"); i >= 0 && !strings.ContainsAny(s[:i], " \t(") {
			// Drop a language tag on the opening fence.
			s = s[i+1:]
		}
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "Expression:"))
	return s
}
