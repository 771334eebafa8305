package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3"
)

// Ollama implements Backend against a local Ollama server.
type Ollama struct {
	client *api.Client
	model  string
}

func NewOllama(s Settings) (*Ollama, error) {
	base := s.BaseURL
	if base == "" {
		base = defaultOllamaURL
	}
	// api.NewClient wants the bare host, without the OpenAI-compatible /v1 suffix.
	base = strings.TrimSuffix(strings.TrimSuffix(base, "/"), "/v1")
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url %q: %w", base, err)
	}
	model := s.Model
	if model == "" {
		model = defaultOllamaModel
	}
	httpClient := &http.Client{Timeout: s.Timeout}
	return &Ollama{client: api.NewClient(parsed, httpClient), model: model}, nil
}

func (o *Ollama) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    o.model,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Options:  map[string]interface{}{"temperature": temperature},
	}

	var sb strings.Builder
	err := o.client.Chat(ctx, req, func(r api.ChatResponse) error {
		sb.WriteString(r.Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
