package llm

import (
	"context"
	"net/http"
	"time"

	"zara/zara/config"
	"zara/zara/utils/logging"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient talks to any OpenAI-compatible chat completions API; the
// default base URL is Cerebras.
type OpenAIClient struct {
	client   *openai.Client
	sampling config.Sampling
}

func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration, sampling config.Sampling) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenAIClient{
		client:   openai.NewClientWithConfig(cfg),
		sampling: sampling,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	defer logging.LogDuration(ctx, "llm_complete_"+model)()

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: c.sampling.Temperature,
		MaxTokens:   c.sampling.MaxTokens,
		TopP:        c.sampling.TopP,
		Stream:      false,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
