// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server binary needs.
type Config struct {
	Addr            string
	Environment     string
	BaseURL         string
	DefaultLanguage string
	Languages       []string
	LocalesDir      string
	ContentFile     string
	StaticDir       string
	SentryDSN       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. A .env file is applied
// first when present; real environment variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            env("ADDR", ":8080"),
		Environment:     env("ENVIRONMENT", "development"),
		BaseURL:         strings.TrimRight(env("BASE_URL", "http://localhost:8080"), "/"),
		DefaultLanguage: env("DEFAULT_LANGUAGE", "en"),
		Languages:       splitList(env("LANGUAGES", "en,es,fr,de")),
		LocalesDir:      env("LOCALES_DIR", "locales"),
		ContentFile:     env("CONTENT_FILE", "content/resume.yaml"),
		StaticDir:       env("STATIC_DIR", "static"),
		SentryDSN:       env("SENTRY_DSN", ""),
		ShutdownTimeout: duration(env("SHUTDOWN_TIMEOUT", "10s")),
	}

	if len(cfg.Languages) == 0 {
		return nil, fmt.Errorf("config: LANGUAGES must list at least one language")
	}
	if !slices.Contains(cfg.Languages, cfg.DefaultLanguage) {
		return nil, fmt.Errorf("config: DEFAULT_LANGUAGE %q is not in LANGUAGES", cfg.DefaultLanguage)
	}

	return cfg, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func duration(v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}
