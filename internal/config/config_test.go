package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BACKEND_URL", "")

	cfg := Load(nil)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, defaultBackendURL, cfg.BackendURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_URL", "http://localhost:4000/api")
	t.Setenv("GEMINI_API_KEY", "clave-gemini")
	t.Setenv("GROQ_API_KEY", "")

	cfg := Load([]string{"GEMINI_API_KEY", "GROQ_API_KEY"})
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://localhost:4000/api", cfg.BackendURL)

	key, ok := cfg.APIKey("GEMINI_API_KEY")
	assert.True(t, ok)
	assert.Equal(t, "clave-gemini", key)

	// vacía cuenta como ausente
	_, ok = cfg.APIKey("GROQ_API_KEY")
	assert.False(t, ok)

	// variables no listadas no se capturan
	_, ok = cfg.APIKey("OPENAI_API_KEY")
	assert.False(t, ok)
}
