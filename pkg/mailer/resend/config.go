package resend

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds Resend email provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey string `env:"RESEND_API_KEY"`
	// SenderEmail and SenderName are used when the email has no From address.
	SenderEmail string `env:"RESEND_FROM_EMAIL"`
	SenderName  string `env:"RESEND_FROM_NAME"`
}

// ConfigFromEnv reads Config from RESEND_* environment variables.
func ConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("resend: parse env: %w", err)
	}
	return cfg, nil
}
