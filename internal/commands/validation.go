package commands

import (
	"fmt"
	"net/url"
	"time"

	"github.com/alan/issuectl/cmd"
)

// ValidateConfig checks that the configuration can address a repository
func ValidateConfig(config *cmd.Config) error {
	if config.BaseURL == "" {
		return fmt.Errorf("base_url is required in configuration")
	}

	u, err := url.Parse(config.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", config.BaseURL)
	}

	if config.Repo == "" {
		return fmt.Errorf("repo is required in configuration")
	}

	switch config.Auth {
	case "", cmd.AuthBasic, cmd.AuthBearer:
	default:
		return fmt.Errorf("unsupported auth mode %q (use basic or bearer)", config.Auth)
	}

	if _, err := ParseTimeout(config.Timeout); err != nil {
		return err
	}

	return nil
}

// ParseTimeout parses the configured request timeout. An empty value means no timeout.
func ParseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", s)
	}
	return d, nil
}
