package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aulacta/cta-chat-backend/internal"
	"github.com/aulacta/cta-chat-backend/internal/registry"
)

type capturedChat struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// stub de chat/completions que captura el request y responde fijo
func newChatStub(t *testing.T, captured *capturedChat, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hola"}}]}`))
	}))
}

func testModel(endpoint string) registry.Model {
	return registry.Model{ID: "test-model", Provider: registry.Groq, Endpoint: endpoint}
}

func TestOpenAICompatibleWithContext(t *testing.T) {
	var captured capturedChat
	calls := 0
	srv := newChatStub(t, &captured, &calls)
	defer srv.Close()

	adapter := &OpenAICompatible{}
	text, err := adapter.Generate(context.Background(), Request{
		Model:   testModel(srv.URL + "/v1"),
		APIKey:  "test-key",
		Message: "¿qué es la fotosíntesis?",
		History: []internal.Message{
			{Role: internal.RoleUser, Content: "hola"},
			{Role: internal.RoleAssistant, Content: "¡hola!"},
		},
		ContextBlock: "Archivo: temas.txt\nfotosíntesis...",
	})
	require.NoError(t, err)
	assert.Equal(t, "hola", text)
	assert.Equal(t, 1, calls)

	assert.Equal(t, "test-model", captured.Model)
	assert.InDelta(t, 0.7, captured.Temperature, 0.001)
	assert.Equal(t, 2000, captured.MaxTokens)

	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "Archivo: temas.txt\nfotosíntesis...", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "assistant", captured.Messages[2].Role)
	assert.Equal(t, "user", captured.Messages[3].Role)
	assert.Equal(t, "¿qué es la fotosíntesis?", captured.Messages[3].Content)
}

func TestOpenAICompatibleWithoutContext(t *testing.T) {
	var captured capturedChat
	calls := 0
	srv := newChatStub(t, &captured, &calls)
	defer srv.Close()

	adapter := &OpenAICompatible{}
	_, err := adapter.Generate(context.Background(), Request{
		Model:   testModel(srv.URL + "/v1"),
		APIKey:  "test-key",
		Message: "hola",
	})
	require.NoError(t, err)

	require.Len(t, captured.Messages, 1)
	for _, m := range captured.Messages {
		assert.NotEqual(t, "system", m.Role)
	}
}

func TestOpenAICompatibleMaxTokensOverride(t *testing.T) {
	var captured capturedChat
	calls := 0
	srv := newChatStub(t, &captured, &calls)
	defer srv.Close()

	adapter := &OpenAICompatible{}
	_, err := adapter.Generate(context.Background(), Request{
		Model:     testModel(srv.URL + "/v1"),
		APIKey:    "test-key",
		Message:   "genera un tema",
		MaxTokens: 3000,
	})
	require.NoError(t, err)
	assert.Equal(t, 3000, captured.MaxTokens)
}

func TestOpenAICompatibleUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	adapter := &OpenAICompatible{}
	_, err := adapter.Generate(context.Background(), Request{
		Model:   testModel(srv.URL + "/v1"),
		APIKey:  "test-key",
		Message: "hola",
	})
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusTooManyRequests, upErr.Status)
	assert.Contains(t, upErr.Body, "rate limited")
}

func TestOpenAICompatibleEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	adapter := &OpenAICompatible{}
	_, err := adapter.Generate(context.Background(), Request{
		Model:   testModel(srv.URL + "/v1"),
		APIKey:  "test-key",
		Message: "hola",
	})
	assert.ErrorIs(t, err, ErrUnexpectedFormat)
}
