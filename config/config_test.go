package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PITCHCRAFT_ADDR", "DATABASE_PATH", "LOG_LEVEL", "LOG_ENCODING", "LOG_OUTPUT",
		"AI_PROVIDER", "AI_MODEL", "AI_BASE_URL", "AI_TIMEOUT", "AI_TOKEN_METRICS",
		"OPENAI_API_KEY", "OPENROUTER_API_KEY", "DEEPSEEK_API_KEY", "GOOGLE_API_KEY", "OLLAMA_HOST",
		"SITE_FETCH_TIMEOUT", "CORS_ORIGINS", "STYLE_PATH", "PUBLISH_DIR", "PUBLISH_WEBHOOK_URL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, 10*time.Second, cfg.SiteFetchTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "none", cfg.Provider())
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OPENROUTER_API_KEY=sk-or\nAI_TIMEOUT=5s\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("OPENROUTER_API_KEY")
		os.Unsetenv("AI_TIMEOUT")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	s := cfg.LLMSettings()
	assert.Equal(t, "openrouter", s.Provider)
	assert.Equal(t, "sk-or", s.APIKey)
	assert.Equal(t, 5*time.Second, s.Timeout)
}

func TestProvider_AutoOrder(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"openai first", Config{AIProvider: "auto", OpenAIAPIKey: "a", OpenRouterAPIKey: "b", GoogleAPIKey: "c"}, "openai"},
		{"demo key skipped", Config{AIProvider: "auto", OpenAIAPIKey: "demo_key_for_testing", GoogleAPIKey: "c"}, "gemini"},
		{"explicit wins", Config{AIProvider: "Ollama", OpenAIAPIKey: "a"}, "ollama"},
		{"nothing configured", Config{AIProvider: ""}, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Provider())
		})
	}
}

func TestLLMSettings_Ollama(t *testing.T) {
	cfg := Config{AIProvider: "ollama", OllamaHost: "http://gpu:11434", AIModel: "llama3.1"}
	s := cfg.LLMSettings()
	assert.Equal(t, "http://gpu:11434", s.BaseURL)
	assert.Equal(t, "llama3.1", s.Model)
	assert.Empty(t, s.APIKey)
}

func TestLLMSettings_DeepSeekUsesOwnKey(t *testing.T) {
	cfg := Config{AIProvider: "deepseek", OpenRouterAPIKey: "sk-or", DeepSeekAPIKey: "sk-ds"}
	s := cfg.LLMSettings()
	assert.Equal(t, "deepseek", s.Provider)
	assert.Equal(t, "sk-ds", s.APIKey)
	assert.Empty(t, s.BaseURL)
}

func TestLoadStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: corporate\nprimary_color: \"#003366\"\nfonts:\n  title: Inter\n"), 0o600))

	style, err := LoadStyle(path)
	require.NoError(t, err)
	assert.Equal(t, "corporate", style["theme"])
	assert.Equal(t, "#003366", style["primary_color"])
	assert.Equal(t, map[string]any{"title": "Inter"}, style["fonts"])

	empty, err := LoadStyle("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = LoadStyle(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
