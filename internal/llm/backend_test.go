package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kamyarmaaf/plan1/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackends(t *testing.T) {
	backends := NewBackends([]config.BackendConfig{
		{Kind: "openai", Endpoint: "http://x", APIKey: "k"},
		{Kind: "ollama", Endpoint: "http://y"},
		{Kind: "mystery"},
	})
	require.Len(t, backends, 2)
	assert.Equal(t, "openai", backends[0].Name())
	assert.Equal(t, "ollama", backends[1].Name())
}

func TestOllamaBackend_Complete(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(ollamaResponse{Model: got.Model, Response: `{"ok": true}`})
	}))
	defer srv.Close()

	b := newOllamaBackend(config.BackendConfig{
		Kind: "ollama", Endpoint: srv.URL, Model: "llama3.2", Temperature: 0.3, MaxTokens: 256,
	})
	out, err := b.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "sys", UserPrompt: "user",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)

	assert.Equal(t, "llama3.2", got.Model)
	assert.Equal(t, "sys", got.System)
	assert.Equal(t, "user", got.Prompt)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.3, got.Options.Temperature)
	assert.Equal(t, 256, got.Options.NumPredict)
}

func TestOllamaBackend_EmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Response: "   "})
	}))
	defer srv.Close()

	b := newOllamaBackend(config.BackendConfig{Kind: "ollama", Endpoint: srv.URL})
	_, err := b.Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOllamaBackend_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	b := newOllamaBackend(config.BackendConfig{Kind: "ollama", Endpoint: srv.URL})
	_, err := b.Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestOllamaBackend_Unreachable(t *testing.T) {
	b := newOllamaBackend(config.BackendConfig{Kind: "ollama", Endpoint: "http://127.0.0.1:1", TimeoutMs: 500})
	_, err := b.Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOpenAIBackend_Complete(t *testing.T) {
	var got chatRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": `{"ok": true}`}},
			},
		})
	}))
	defer srv.Close()

	b := newOpenAIBackend(config.BackendConfig{
		Kind: "openai", Endpoint: srv.URL, APIKey: "sk-test", Model: "gpt-4o-mini",
	})
	out, err := b.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "sys", UserPrompt: "user",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)

	assert.Equal(t, "Bearer sk-test", auth)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
}

func TestOpenAIBackend_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	b := newOpenAIBackend(config.BackendConfig{Kind: "openai", Endpoint: srv.URL, APIKey: "k"})
	_, err := b.Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestEffectiveParams(t *testing.T) {
	cfg := config.BackendConfig{Temperature: 0.3, MaxTokens: 2048}

	temp, maxTok := effectiveParams(cfg, CompletionRequest{})
	assert.Equal(t, 0.3, temp)
	assert.Equal(t, 2048, maxTok)

	overrideTemp := 0.9
	overrideTok := 512
	temp, maxTok = effectiveParams(cfg, CompletionRequest{Temperature: &overrideTemp, MaxTokens: &overrideTok})
	assert.Equal(t, 0.9, temp)
	assert.Equal(t, 512, maxTok)
}
