package tabular

import (
	"context"
	"fmt"

	"github.com/dop251/goja"
)

// evalExpression runs a JavaScript expression against the table in a
// fresh interpreter. Each call gets its own runtime so state never
// leaks between queries, and the runtime is interrupted when ctx ends.
func evalExpression(ctx context.Context, table *Table, expression string) (string, error) {
	if expression == "" {
		return "", fmt.Errorf("empty expression")
	}

	vm := goja.New()
	if err := vm.Set("table", table.jsView()); err != nil {
		return "", fmt.Errorf("failed to bind table: %w", err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	value, err := vm.RunString(expression)
	if err != nil {
		if interrupted, ok := err.(*goja.InterruptedError); ok {
			return "", fmt.Errorf("execution interrupted: %v", interrupted.Value())
		}
		return "", err
	}
	return formatValue(value), nil
}

// formatValue renders an interpreter value as answer text.
func formatValue(value goja.Value) string {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return ""
	}
	return fmt.Sprint(value.Export())
}
