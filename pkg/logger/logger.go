package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config holds logger configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Format string     `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig

	// Output defaults to os.Stdout.
	Output io.Writer
}

// ConfigFromEnv reads Config from LOG_* and SENTRY_* environment variables.
func ConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("logger: parse env: %w", err)
	}
	return cfg, nil
}

// New creates a logger from cfg with optional context extractors.
// Records go to cfg.Output; when cfg.Sentry.DSN is set they are also shipped to Sentry.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, FormatText) {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	if sentryHandler, ok := newSentryHandler(cfg.Sentry, handler); ok {
		handler = newMultiHandler(handler, sentryHandler)
	}

	return slog.New(NewLogHandlerDecorator(handler, extractors...))
}
