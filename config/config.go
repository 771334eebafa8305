package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"pitchcraft/llm"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Addr         string `envconfig:"PITCHCRAFT_ADDR" default:":5000"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"data/pitchcraft.db"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding  string `envconfig:"LOG_ENCODING" default:"json"`
	// LogOutput is a file path, stdout or stderr. One-shot commands default
	// to stderr so their JSON output stays clean.
	LogOutput string `envconfig:"LOG_OUTPUT"`

	// AIProvider is auto, openai, openrouter, deepseek, gemini, ollama, mock
	// or none. auto picks the first provider with a key.
	AIProvider     string        `envconfig:"AI_PROVIDER" default:"auto"`
	AIModel        string        `envconfig:"AI_MODEL"`
	AIBaseURL      string        `envconfig:"AI_BASE_URL"`
	AITimeout      time.Duration `envconfig:"AI_TIMEOUT" default:"30s"`
	AITokenMetrics bool          `envconfig:"AI_TOKEN_METRICS" default:"false"`

	OpenAIAPIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenRouterAPIKey string `envconfig:"OPENROUTER_API_KEY"`
	DeepSeekAPIKey   string `envconfig:"DEEPSEEK_API_KEY"`
	GoogleAPIKey     string `envconfig:"GOOGLE_API_KEY"`
	OllamaHost       string `envconfig:"OLLAMA_HOST"`

	SiteFetchTimeout  time.Duration `envconfig:"SITE_FETCH_TIMEOUT" default:"10s"`
	CORSOrigins       []string      `envconfig:"CORS_ORIGINS" default:"*"`
	PublishDir        string        `envconfig:"PUBLISH_DIR" default:"data/decks"`
	PublishWebhookURL string        `envconfig:"PUBLISH_WEBHOOK_URL"`

	// StylePath optionally points at a YAML file with the default deck style.
	StylePath string `envconfig:"STYLE_PATH"`
}

// Load reads the given .env files (missing files are skipped) and then the
// environment. Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// Provider resolves auto to a concrete provider name, or "none".
func (c *Config) Provider() string {
	p := strings.ToLower(strings.TrimSpace(c.AIProvider))
	if p != "auto" && p != "" {
		return p
	}
	switch {
	case usableKey(c.OpenAIAPIKey):
		return "openai"
	case usableKey(c.OpenRouterAPIKey):
		return "openrouter"
	case usableKey(c.GoogleAPIKey):
		return "gemini"
	default:
		return "none"
	}
}

// LLMSettings selects the single provider this process will use.
func (c *Config) LLMSettings() llm.Settings {
	s := llm.Settings{
		Provider: c.Provider(),
		Model:    c.AIModel,
		BaseURL:  c.AIBaseURL,
		Timeout:  c.AITimeout,
	}
	switch s.Provider {
	case "openai":
		s.APIKey = c.OpenAIAPIKey
	case "openrouter":
		s.APIKey = c.OpenRouterAPIKey
	case "deepseek":
		s.APIKey = c.DeepSeekAPIKey
	case "gemini":
		s.APIKey = c.GoogleAPIKey
	case "ollama":
		if s.BaseURL == "" {
			s.BaseURL = c.OllamaHost
		}
	}
	return s
}

func usableKey(k string) bool {
	k = strings.TrimSpace(k)
	return k != "" && k != "demo_key_for_testing"
}
