//go:generate go run go.uber.org/mock/mockgen -source=llm.go -destination=../mocks/mock_llm.go -package=mocks
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const maxTokens = 2048

type ILLM interface {
	Answer(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// LLMClient wraps the OpenAI chat completion API behind the narrow
// interface the chat service needs.
type LLMClient struct {
	*openai.Client
	Model string
}

// NewLLMClient builds a client for the configured model. A non-empty
// baseURL redirects calls to an API-compatible gateway or proxy.
func NewLLMClient(apiKey, model, baseURL string) *LLMClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &LLMClient{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *LLMClient) Answer(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	model := c.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens,
	// and leave the temperature at its fixed default.
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
		req.Temperature = 0.5
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	return resp.Choices[0].Message.Content, nil
}
