package tabular

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragsynth/go-ragsynth/llm"
	"github.com/ragsynth/go-ragsynth/prompthelper"
	"github.com/ragsynth/go-ragsynth/service"
	"github.com/ragsynth/go-ragsynth/synthesizer"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		[]string{"city", "population"},
		[][]interface{}{
			{"Tokyo", 13960000},
			{"Berlin", 3645000},
			{"Toronto", 2930000},
		},
	)
	require.NoError(t, err)
	return table
}

func newEngine(t *testing.T, respond func(string) string, opts ...EngineOption) (*TableQueryEngine, *llm.MockPredictor) {
	t.Helper()
	pred := llm.NewMockPredictor()
	pred.Respond = respond
	helper, err := prompthelper.NewPromptHelper(4096, 256, 0)
	require.NoError(t, err)
	sctx, err := service.NewContext(pred, helper)
	require.NoError(t, err)
	engine, err := NewTableQueryEngine(sctx, newTestTable(t), opts...)
	require.NoError(t, err)
	return engine, pred
}

func TestNewTableValidatesRowWidth(t *testing.T) {
	_, err := NewTable([]string{"a", "b"}, [][]interface{}{{1}})
	assert.Error(t, err)

	_, err = NewTable(nil, nil)
	assert.Error(t, err)
}

func TestTableHeadAndString(t *testing.T) {
	table := newTestTable(t)

	head := table.Head(2)
	assert.Equal(t, 2, head.NumRows())
	assert.Equal(t, 3, table.Head(10).NumRows())
	assert.Equal(t, 0, table.Head(-1).NumRows())

	s := head.String()
	assert.Equal(t, "city | population\nTokyo | 13960000\nBerlin | 3645000", s)
}

func TestNewTableQueryEngineRequiresTable(t *testing.T) {
	pred := llm.NewMockPredictor()
	helper, err := prompthelper.NewPromptHelper(4096, 256, 0)
	require.NoError(t, err)
	sctx, err := service.NewContext(pred, helper)
	require.NoError(t, err)

	_, err = NewTableQueryEngine(sctx, nil)
	assert.ErrorIs(t, err, ErrMissingTable)

	_, err = NewTableQueryEngine(nil, newTestTable(t))
	assert.Error(t, err)
}

func TestQueryRunsGeneratedExpression(t *testing.T) {
	engine, pred := newEngine(t, func(string) string {
		return "table.rows.filter(r => r.population > 3000000).length"
	})

	resp, err := engine.Query(context.Background(), "How many cities have over 3 million people?")
	require.NoError(t, err)

	assert.Equal(t, "2", resp.Response)
	assert.Equal(t, "table.rows.filter(r => r.population > 3000000).length", resp.ExtraInfo[ExtraInfoInstruction])
	require.Len(t, pred.Calls, 1)
	assert.Contains(t, pred.Calls[0], "Tokyo | 13960000")
	assert.Contains(t, pred.Calls[0], "How many cities have over 3 million people?")
}

func TestQueryStripsCodeFences(t *testing.T) {
	engine, _ := newEngine(t, func(string) string {
		return "```js\ntable.numRows\n```"
	})

	resp, err := engine.Query(context.Background(), "How many rows?")
	require.NoError(t, err)

	assert.Equal(t, "3", resp.Response)
	assert.Equal(t, "table.numRows", resp.ExtraInfo[ExtraInfoInstruction])
}

func TestQueryDegradesOnBadExpression(t *testing.T) {
	engine, _ := newEngine(t, func(string) string {
		return "noSuchVariable.frobnicate()"
	})

	resp, err := engine.Query(context.Background(), "What is?")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Response, codeErrorPrefix))
	assert.Equal(t, "noSuchVariable.frobnicate()", resp.ExtraInfo[ExtraInfoInstruction])
}

func TestQueryDegradesOnEmptyExpression(t *testing.T) {
	engine, _ := newEngine(t, func(string) string {
		return "   "
	})

	resp, err := engine.Query(context.Background(), "What is?")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Response, codeErrorPrefix))
}

func TestQueryInterruptsRunawayExpression(t *testing.T) {
	engine, _ := newEngine(t, func(string) string {
		return "(() => { while (true) {} })()"
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	resp, err := engine.Query(ctx, "What is?")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Response, codeErrorPrefix))
}

func TestQueryRecordsPromptCall(t *testing.T) {
	engine, _ := newEngine(t, func(string) string {
		return "table.numRows"
	}, WithHeadRows(1))

	resp, err := engine.Query(context.Background(), "How many rows?")
	require.NoError(t, err)

	calls, ok := resp.ExtraInfo[synthesizer.ExtraInfoPromptCalls].([]synthesizer.PromptCall)
	require.True(t, ok)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "city | population\nTokyo | 13960000")
	assert.NotContains(t, calls[0].Prompt, "Berlin")
}

func TestQueryPropagatesPredictorError(t *testing.T) {
	engine, pred := newEngine(t, nil)
	pred.Err = assert.AnError

	_, err := engine.Query(context.Background(), "What is?")
	assert.Error(t, err)
}
