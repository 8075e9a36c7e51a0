package llm

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kamyarmaaf/plan1/internal/config"
)

// CompletionRequest holds the parameters for one generation call.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses the backend default
	MaxTokens    *int     // nil uses the backend default
}

// Backend is a single external text-generation service. Transport errors,
// non-2xx statuses and empty completions all surface as errors; the caller
// decides what to try next.
type Backend interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// NewBackends builds clients for an ordered list of backend descriptors.
// Unknown kinds are skipped.
func NewBackends(configs []config.BackendConfig) []Backend {
	var backends []Backend
	for _, cfg := range configs {
		switch cfg.Kind {
		case "ollama":
			backends = append(backends, newOllamaBackend(cfg))
		case "openai":
			backends = append(backends, newOpenAIBackend(cfg))
		}
	}
	return backends
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

func requestTimeout(cfg config.BackendConfig) time.Duration {
	if cfg.TimeoutMs > 0 {
		return time.Duration(cfg.TimeoutMs) * time.Millisecond
	}
	return 30 * time.Second
}

func effectiveParams(cfg config.BackendConfig, req CompletionRequest) (float64, int) {
	temp := cfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := cfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}

func statusError(name string, status int, body []byte) error {
	return fmt.Errorf("%s returned status %d: %s", name, status, truncate(string(body), 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
