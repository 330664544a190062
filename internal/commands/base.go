package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/alan/issuectl/cmd"
	"github.com/alan/issuectl/internal/github"
	"golang.org/x/oauth2"
)

// BaseCommand provides common fields and initialization for all commands
type BaseCommand struct {
	ConfigFile   *string
	LoadConfig   func(string) (*cmd.Config, error)
	GitHubClient *github.Client
	Context      context.Context
	Config       *cmd.Config
	Out          io.Writer
}

// Init initializes the base command with common setup
func (bc *BaseCommand) Init() error {
	// Load configuration
	config, err := bc.LoadConfig(*bc.ConfigFile)
	if err != nil {
		return err
	}
	if err := ValidateConfig(config); err != nil {
		return err
	}
	bc.Config = config

	client, err := NewClientFromConfig(config)
	if err != nil {
		return err
	}
	if bc.Context == nil {
		bc.Context = context.Background()
	}
	bc.GitHubClient = client
	if bc.Out == nil {
		bc.Out = os.Stdout
	}

	return nil
}

// NewClientFromConfig builds an API client from the configuration and the credentials in the environment
func NewClientFromConfig(config *cmd.Config) (*github.Client, error) {
	token, err := getToken()
	if err != nil {
		return nil, err
	}

	timeout, err := ParseTimeout(config.Timeout)
	if err != nil {
		return nil, err
	}

	opts := []github.Option{
		github.WithHTTPClient(&http.Client{Timeout: timeout}),
		github.WithUserAgent(config.UserAgent),
	}

	mode := cmd.ParseAuthMode(string(config.Auth))
	slog.Debug("Creating API client", "base_url", config.BaseURL, "repo", config.Repo, "auth", mode)

	if mode == cmd.AuthBearer {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		return github.NewTokenClient(config.BaseURL, ts, opts...), nil
	}

	username := getUsername(config)
	if username == "" {
		return nil, fmt.Errorf("username is required for basic authentication (set username in config or ISSUECTL_USERNAME)")
	}
	return github.NewClient(config.BaseURL, username, token, opts...), nil
}

// getToken retrieves the API token from the environment
func getToken() (string, error) {
	for _, name := range []string{"ISSUECTL_TOKEN", "GITHUB_TOKEN"} {
		if token := os.Getenv(name); token != "" {
			return token, nil
		}
	}
	return "", fmt.Errorf("ISSUECTL_TOKEN or GITHUB_TOKEN environment variable is required")
}

// getUsername returns the basic auth identity, preferring the environment over the config file
func getUsername(config *cmd.Config) string {
	if username := os.Getenv("ISSUECTL_USERNAME"); username != "" {
		return username
	}
	return config.Username
}
