package llm

import (
	"context"

	"github.com/ragsynth/go-ragsynth/prompts"
	"github.com/ragsynth/go-ragsynth/textsplitter"
)

// MockLLM is a deterministic LLM for tests: it returns a fixed
// response, or an error.
type MockLLM struct {
	// Response is the text response to return.
	Response string
	// Err is the error to return (if any).
	Err error
}

// NewMockLLM creates a MockLLM with a fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a MockLLM that always fails.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Err: err}
}

func (m *MockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return m.Response, m.Err
}

var _ LLM = (*MockLLM)(nil)

// MockPredictor is a deterministic Predictor for tests. It formats
// templates normally and derives the completion from the rendered
// prompt via Respond, echoing the prompt by default. Calls records
// every rendered prompt in order.
type MockPredictor struct {
	// Respond maps a rendered prompt to a completion. Nil echoes the
	// rendered prompt.
	Respond func(renderedPrompt string) string
	// Err, when set, fails every call.
	Err error
	// Tokenizer measures token counts; whitespace tokens by default.
	Tokenizer textsplitter.Tokenizer
	// MaxInputSize reported via Metadata.
	MaxInputSize int
	// Calls records each rendered prompt.
	Calls []string
}

// NewMockPredictor creates an echoing MockPredictor.
func NewMockPredictor() *MockPredictor {
	return &MockPredictor{MaxInputSize: 4096}
}

func (m *MockPredictor) Predict(ctx context.Context, tmpl prompts.BasePromptTemplate, vars map[string]string) (string, string, error) {
	rendered := tmpl.Format(vars)
	m.Calls = append(m.Calls, rendered)
	if m.Err != nil {
		return "", "", &PredictorError{Model: "mock", Err: m.Err}
	}
	if m.Respond != nil {
		return m.Respond(rendered), rendered, nil
	}
	return rendered, rendered, nil
}

func (m *MockPredictor) CountTokens(text string) int {
	tok := m.Tokenizer
	if tok == nil {
		tok = textsplitter.NewWhitespaceTokenizer()
	}
	return len(tok.Encode(text))
}

func (m *MockPredictor) Metadata() LLMMetadata {
	return LLMMetadata{ModelName: "mock", ContextWindow: m.MaxInputSize}
}

var _ Predictor = (*MockPredictor)(nil)
