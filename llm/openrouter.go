package llm

import (
	"context"
	"errors"
	"net/http"

	openaigo "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterURL   = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel = "deepseek/deepseek-chat"

	defaultDeepSeekURL   = "https://api.deepseek.com/v1"
	defaultDeepSeekModel = "deepseek-chat"
)

// OpenRouter talks to any OpenAI-compatible gateway through go-openai.
type OpenRouter struct {
	client *openaigo.Client
	model  string
}

func NewOpenRouter(s Settings) (*OpenRouter, error) {
	if !hasKey(s.APIKey) {
		return nil, errors.New("openrouter api key missing; set OPENROUTER_API_KEY")
	}
	cfg := openaigo.DefaultConfig(s.APIKey)
	cfg.BaseURL = defaultOpenRouterURL
	if s.BaseURL != "" {
		cfg.BaseURL = s.BaseURL
	}
	if s.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: s.Timeout}
	}
	model := s.Model
	if model == "" {
		model = defaultOpenRouterModel
	}
	return &OpenRouter{client: openaigo.NewClientWithConfig(cfg), model: model}, nil
}

// NewDeepSeek points the OpenAI-compatible client at DeepSeek's own API
// unless s overrides the base URL or model.
func NewDeepSeek(s Settings) (*OpenRouter, error) {
	return NewOpenRouter(deepSeekSettings(s))
}

func deepSeekSettings(s Settings) Settings {
	if s.BaseURL == "" {
		s.BaseURL = defaultDeepSeekURL
	}
	if s.Model == "" {
		s.Model = defaultDeepSeekModel
	}
	return s
}

func (c *OpenRouter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model: c.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openrouter: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
