package llm

import "fmt"

// LLMMetadata describes the limits of the active model.
type LLMMetadata struct {
	// ModelName identifies the model.
	ModelName string `json:"model_name"`
	// ContextWindow is the maximum number of input tokens.
	ContextWindow int `json:"context_window"`
	// NumOutput is the number of tokens reserved for the completion.
	NumOutput int `json:"num_output"`
}

// DefaultLLMMetadata returns conservative limits for unknown models.
func DefaultLLMMetadata(modelName string) LLMMetadata {
	return LLMMetadata{
		ModelName:     modelName,
		ContextWindow: 4096,
		NumOutput:     256,
	}
}

// PredictorError wraps a failed model call. Synthesis never retries;
// the error propagates to the caller as-is.
type PredictorError struct {
	// Model is the model name the call was made against.
	Model string
	// Err is the underlying transport or provider error.
	Err error
}

func (e *PredictorError) Error() string {
	return fmt.Sprintf("predictor call failed (model=%s): %v", e.Model, e.Err)
}

func (e *PredictorError) Unwrap() error {
	return e.Err
}
