package llm

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4"

// OpenAI implements Backend using the official openai-go SDK (chat completions).
type OpenAI struct {
	client openai.Client
	model  string
}

func NewOpenAI(s Settings) (*OpenAI, error) {
	if !hasKey(s.APIKey) {
		return nil, errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	model := s.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	// Retries are disabled: a single failed attempt must go straight to fallback.
	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithMaxRetries(0),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	return &OpenAI{client: openai.NewClient(opts...), model: model}, nil
}

func (o *OpenAI) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
