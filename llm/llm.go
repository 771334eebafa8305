package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Backend is the single generative capability the pitch generators depend on.
// Implementations return ErrUnavailable when no provider is configured and an
// error wrapping ErrInvocationFailed for any provider-level failure.
type Backend interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

var (
	// ErrUnavailable means no provider is configured for this process.
	ErrUnavailable = errors.New("llm: no provider configured")
	// ErrInvocationFailed covers network, auth, quota, timeout and empty responses.
	ErrInvocationFailed = errors.New("llm: invocation failed")
)

// demoKey is the placeholder key shipped in sample env files; it never reaches a provider.
const demoKey = "demo_key_for_testing"

// Settings selects and configures exactly one provider.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// Unavailable is the backend used when nothing is configured.
type Unavailable struct{}

func (Unavailable) Complete(context.Context, string, float64) (string, error) {
	return "", ErrUnavailable
}

// New 按 s.Provider 构建对应的 provider。缺少或占位的 key 返回 Unavailable 而非错误，
// 生成流程随之降级为演示内容。
func New(ctx context.Context, s Settings) (Backend, error) {
	provider := strings.ToLower(strings.TrimSpace(s.Provider))
	switch provider {
	case "", "none":
		return Unavailable{}, nil
	case "mock":
		return Mock{}, nil
	case "ollama":
		return NewOllama(s)
	}

	if !hasKey(s.APIKey) {
		return Unavailable{}, nil
	}
	switch provider {
	case "openai":
		return NewOpenAI(s)
	case "openrouter":
		return NewOpenRouter(s)
	case "deepseek":
		return NewDeepSeek(s)
	case "gemini":
		return NewGemini(ctx, s)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", s.Provider)
	}
}

func hasKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != demoKey
}

// IsAvailable reports whether b can ever produce text.
func IsAvailable(b Backend) bool {
	if b == nil {
		return false
	}
	_, unavailable := b.(Unavailable)
	return !unavailable
}
