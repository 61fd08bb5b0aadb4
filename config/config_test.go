package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	cfg, err := InitConfig()

	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Server.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "9090", cfg.Handlers.Prometheus.Port)
	assert.Equal(t, ProviderDeepSeek, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 4000, cfg.LLM.MaxTokens)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Repositories.Redis.Address)
}

func TestResolveProvider(t *testing.T) {
	t.Run("missing key falls back to offline", func(t *testing.T) {
		t.Setenv("GOOGLE_GEMINI_API_KEY", "")
		l := LLM{Provider: " Gemini "}
		l.resolveProvider()
		assert.Equal(t, ProviderOffline, l.Provider)
	})

	t.Run("key from the environment", func(t *testing.T) {
		t.Setenv("GOOGLE_GEMINI_API_KEY", "g-key")
		l := LLM{Provider: ProviderGemini}
		l.resolveProvider()
		assert.Equal(t, ProviderGemini, l.Provider)
		assert.Equal(t, "g-key", l.APIKey)
	})

	t.Run("offline needs no key", func(t *testing.T) {
		l := LLM{Provider: ProviderOffline}
		l.resolveProvider()
		assert.Equal(t, ProviderOffline, l.Provider)
	})
}
