package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// BackendConfig describes one text-generation backend. The orchestrator is
// handed an ordered list of these; presence in the list is what enables a
// backend, never ambient environment state.
type BackendConfig struct {
	Kind        string // "ollama" or "openai"
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	TimeoutMs   int
}

type Config struct {
	Env      string
	LogLevel string
	Port     string

	DBType       string
	DBDSN        string
	SQLitePath   string
	FileProfiles string
	FileGoals    string
	FilePlans    string

	AuthMode    string // "local" or "jwt"
	AuthToken   string // static dev token for local mode
	JWTSecret   string
	DefaultTZ   string
	LLMBackends []BackendConfig
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:          getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		DBType:       getEnv("STORAGE_BACKEND", "file"),
		DBDSN:        getEnv("POSTGRES_DSN", ""),
		SQLitePath:   getEnv("SQLITE_PATH", "data/planner.db"),
		FileProfiles: getEnv("PROFILES_FILE", "data/profiles.json"),
		FileGoals:    getEnv("GOALS_FILE", "data/goals.json"),
		FilePlans:    getEnv("PLANS_FILE", "data/plans.json"),
		AuthMode:     getEnv("AUTH_MODE", "local"),
		AuthToken:    getEnv("AUTH_TOKEN", "MOCK-TOKEN"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		DefaultTZ:    getEnv("DEFAULT_TIMEZONE", "UTC"),
		LLMBackends:  loadBackends(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadBackends builds the ordered backend list from LLM_BACKENDS. A backend
// missing its required credential or endpoint is skipped; an empty result is
// valid and routes every generation request to the deterministic fallback.
func loadBackends() []BackendConfig {
	var backends []BackendConfig
	for _, kind := range strings.Split(getEnv("LLM_BACKENDS", ""), ",") {
		kind = strings.TrimSpace(strings.ToLower(kind))
		switch kind {
		case "ollama":
			backends = append(backends, BackendConfig{
				Kind:        "ollama",
				Endpoint:    getEnv("OLLAMA_ENDPOINT", "http://localhost:11434"),
				Model:       getEnv("OLLAMA_MODEL", "llama3.2"),
				Temperature: getEnvFloat("OLLAMA_TEMPERATURE", 0.3),
				MaxTokens:   getEnvInt("OLLAMA_MAX_TOKENS", 2048),
				TimeoutMs:   getEnvInt("OLLAMA_TIMEOUT_MS", 30000),
			})
		case "openai":
			key := os.Getenv("OPENAI_API_KEY")
			if key == "" {
				continue
			}
			backends = append(backends, BackendConfig{
				Kind:        "openai",
				Endpoint:    getEnv("OPENAI_ENDPOINT", "https://api.openai.com"),
				APIKey:      key,
				Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
				Temperature: getEnvFloat("OPENAI_TEMPERATURE", 0.3),
				MaxTokens:   getEnvInt("OPENAI_MAX_TOKENS", 2048),
				TimeoutMs:   getEnvInt("OPENAI_TIMEOUT_MS", 30000),
			})
		}
	}
	return backends
}

func (c *Config) Validate() error {
	switch c.DBType {
	case "postgres":
		if c.DBDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_BACKEND=sqlite")
		}
	case "file":
		if c.FileProfiles == "" || c.FileGoals == "" || c.FilePlans == "" {
			return errors.New("file storage requires PROFILES_FILE, GOALS_FILE and PLANS_FILE")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, sqlite, postgres")
	}
	if c.AuthMode == "jwt" && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required when AUTH_MODE=jwt")
	}
	if c.AuthMode != "jwt" && c.AuthMode != "local" {
		return errors.New("AUTH_MODE must be one of: local, jwt")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return fallback
}
