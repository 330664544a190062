// Package cmd defines the configuration shared by the issuectl commands.
package cmd

// AuthMode selects how requests are authenticated
type AuthMode string

const (
	// AuthBasic sends username and token with HTTP Basic authentication
	AuthBasic AuthMode = "basic"
	// AuthBearer sends the token as an OAuth2 bearer token
	AuthBearer AuthMode = "bearer"
)

// ParseAuthMode converts a string to AuthMode, defaulting to basic
func ParseAuthMode(s string) AuthMode {
	switch s {
	case "bearer":
		return AuthBearer
	default:
		return AuthBasic
	}
}

// Config represents the structure of issuectl.yaml (or issuectl.toml)
type Config struct {
	BaseURL   string   `yaml:"base_url" toml:"base_url"` // e.g. https://api.github.com/repos/<owner>/
	Repo      string   `yaml:"repo" toml:"repo"`
	Username  string   `yaml:"username,omitempty" toml:"username,omitempty"`
	Auth      AuthMode `yaml:"auth,omitempty" toml:"auth,omitempty"`
	Timeout   string   `yaml:"timeout,omitempty" toml:"timeout,omitempty"` // Go duration, empty for no timeout
	UserAgent string   `yaml:"user_agent,omitempty" toml:"user_agent,omitempty"`
}
