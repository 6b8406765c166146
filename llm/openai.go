package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAILLM is a thin completion adapter over the OpenAI chat API.
type OpenAILLM struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAILLM creates an adapter. Empty arguments fall back to the
// OPENAI_API_KEY / OPENAI_URL environment variables and gpt-3.5-turbo.
func NewOpenAILLM(baseURL, model, apiKey string) *OpenAILLM {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if baseURL == "" {
		baseURL = os.Getenv("OPENAI_URL")
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAILLM{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: slog.Default(),
	}
}

// NewOpenAILLMWithClient creates an adapter around an existing client.
func NewOpenAILLMWithClient(client *openai.Client, model string) *OpenAILLM {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAILLM{client: client, model: model, logger: slog.Default()}
}

// Complete generates a completion for the prompt.
func (o *OpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	o.logger.Debug("llm complete", "model", o.model, "prompt_len", len(prompt))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model name.
func (o *OpenAILLM) Model() string {
	return o.model
}

// Metadata returns limits for the configured model.
func (o *OpenAILLM) Metadata() LLMMetadata {
	switch o.model {
	case openai.GPT4o, openai.GPT4oMini:
		return LLMMetadata{ModelName: o.model, ContextWindow: 128000, NumOutput: 4096}
	case openai.GPT4:
		return LLMMetadata{ModelName: o.model, ContextWindow: 8192, NumOutput: 4096}
	case openai.GPT3Dot5Turbo:
		return LLMMetadata{ModelName: o.model, ContextWindow: 16385, NumOutput: 4096}
	default:
		return DefaultLLMMetadata(o.model)
	}
}

var _ LLM = (*OpenAILLM)(nil)
