package directmail

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// AddressType selects how DirectMail treats the sender address.
type AddressType string

const (
	// AddressTypeRandom lets DirectMail pick a random account address.
	AddressTypeRandom AddressType = "0"
	// AddressTypeSender sends from the configured sender address.
	AddressTypeSender AddressType = "1"
)

// Default configuration values.
const (
	DefaultAddressType = AddressTypeSender
	DefaultTimeout     = 30 * time.Second
)

// Config holds DirectMail provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	// AccessKeyID is the account access key (required).
	AccessKeyID string `env:"DIRECTMAIL_ACCESS_KEY_ID"`

	// AccessKeySecret is the account secret used to sign requests (required).
	AccessKeySecret string `env:"DIRECTMAIL_ACCESS_KEY_SECRET"`

	// RegionID selects the API endpoint (default: cn-hangzhou).
	RegionID string `env:"DIRECTMAIL_REGION_ID" envDefault:"cn-hangzhou"`

	// FromAddress overrides the message sender address (optional).
	FromAddress string `env:"DIRECTMAIL_FROM_ADDRESS"`

	// FromAlias overrides the sender display name (optional).
	FromAlias string `env:"DIRECTMAIL_FROM_ALIAS"`

	// AddressType is passed through as the AddressType parameter (default: 1).
	AddressType AddressType `env:"DIRECTMAIL_ADDRESS_TYPE" envDefault:"1"`

	// ClickTrace enables click tracking (default: off).
	ClickTrace bool `env:"DIRECTMAIL_CLICK_TRACE" envDefault:"false"`

	// Timeout bounds the default HTTP client. Ignored when a client is supplied.
	Timeout time.Duration `env:"DIRECTMAIL_TIMEOUT" envDefault:"30s"`
}

// ConfigFromEnv reads Config from DIRECTMAIL_* environment variables.
func ConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// applyDefaults fills in default values for empty config fields.
func (c *Config) applyDefaults() {
	if c.RegionID == "" {
		c.RegionID = DefaultRegionID
	}
	if c.AddressType == "" {
		c.AddressType = DefaultAddressType
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// validate checks that required configuration fields are set and recognized.
func (c *Config) validate() error {
	if c.AccessKeyID == "" {
		return fmt.Errorf("%w: access key id is required", ErrInvalidConfig)
	}
	if c.AccessKeySecret == "" {
		return fmt.Errorf("%w: access key secret is required", ErrInvalidConfig)
	}
	switch c.AddressType {
	case AddressTypeRandom, AddressTypeSender:
	default:
		return fmt.Errorf("%w: address type must be 0 or 1, got %q", ErrInvalidConfig, c.AddressType)
	}
	if _, err := ResolveRegion(c.RegionID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) clickTrace() string {
	if c.ClickTrace {
		return "1"
	}
	return "0"
}
