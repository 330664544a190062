// Package config implements the config command for initializing and updating issuectl configuration.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"

	"github.com/alan/issuectl/cmd"
	"github.com/alan/issuectl/internal/commands"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultAPIURL = "https://api.github.com"

// configValues holds the values provided on the command line
type configValues struct {
	baseURL  string
	repo     string
	username string
	auth     string
	timeout  string
}

// NewConfigCmd creates and returns the config command
func NewConfigCmd(globalConfigFile *string, loadConfig func(string) (*cmd.Config, error), saveConfig func(string, *cmd.Config) error) *cobra.Command {
	values := &configValues{}

	cobraCmd := &cobra.Command{
		Use:   "config",
		Short: "Initialize or update the issuectl configuration file",
		Long: `Config creates or updates the issuectl configuration file.

When run from a git repository whose origin is on GitHub, the base URL and
repository are detected from the remote.

Credentials are never written to the file: the token is read from ISSUECTL_TOKEN
(or GITHUB_TOKEN) and the username may be overridden with ISSUECTL_USERNAME.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return runConfigWithGitDetection(cobraCmd.OutOrStdout(), *globalConfigFile, *values, loadConfig, saveConfig)
		},
	}
	addConfigFlags(cobraCmd, values)

	cobraCmd.AddCommand(&cobra.Command{
		Use:          "show",
		Short:        "Print the current configuration",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return runShow(cobraCmd.OutOrStdout(), *globalConfigFile, loadConfig)
		},
	})

	return cobraCmd
}

// addConfigFlags adds all flags to the config command
func addConfigFlags(cobraCmd *cobra.Command, values *configValues) {
	cobraCmd.Flags().StringVarP(&values.baseURL, "base-url", "u", "", "API base URL scoped to the repository owner (auto-detected from git if available)")
	cobraCmd.Flags().StringVarP(&values.repo, "repo", "r", "", "Repository name (auto-detected from git if available)")
	cobraCmd.Flags().StringVar(&values.username, "username", "", "Username for basic authentication")
	cobraCmd.Flags().StringVar(&values.auth, "auth", "", "Authentication mode (basic, bearer)")
	cobraCmd.Flags().StringVar(&values.timeout, "timeout", "", "Request timeout, e.g. 30s (empty for none)")
}

// runConfigWithGitDetection handles config creation with git auto-detection
func runConfigWithGitDetection(w io.Writer, configFile string, values configValues, loadConfig func(string) (*cmd.Config, error), saveConfig func(string, *cmd.Config) error) error {
	config, _ := loadOrCreateConfig(configFile, loadConfig)

	if values.baseURL == "" && config.BaseURL == "" || values.repo == "" && config.Repo == "" {
		if gitInfo, err := detectGitRepoInfo(); err == nil {
			if values.baseURL == "" && config.BaseURL == "" {
				values.baseURL = fmt.Sprintf("%s/repos/%s/", defaultAPIURL, gitInfo.Owner)
				slog.Info("Auto-detected base URL", "base_url", values.baseURL)
			}
			if values.repo == "" && config.Repo == "" {
				values.repo = gitInfo.Repo
				slog.Info("Auto-detected repository", "repo", values.repo)
			}
		} else {
			slog.Debug("Git detection unavailable", "error", err)
		}
	}

	return runConfig(w, configFile, values, loadConfig, saveConfig)
}

func runConfig(w io.Writer, configFile string, values configValues, loadConfig func(string) (*cmd.Config, error), saveConfig func(string, *cmd.Config) error) error {
	config, isUpdate := loadOrCreateConfig(configFile, loadConfig)

	updateConfigWithProvidedValues(config, values)

	if err := commands.ValidateConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := saveConfig(configFile, config); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	displayConfigSuccess(w, configFile, config, isUpdate)
	return nil
}

// runShow prints the configuration file contents as YAML
func runShow(w io.Writer, configFile string, loadConfig func(string) (*cmd.Config, error)) error {
	config, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}

// displayConfigSuccess shows the configuration success message
func displayConfigSuccess(w io.Writer, configFile string, config *cmd.Config, isUpdate bool) {
	action := "initialized"
	if isUpdate {
		action = "updated"
	}
	fmt.Fprintf(w, "Successfully %s %s with:\n", action, configFile)
	fmt.Fprintf(w, "  Base URL: %s\n", config.BaseURL)
	fmt.Fprintf(w, "  Repository: %s\n", config.Repo)
	fmt.Fprintf(w, "  Auth: %s\n", cmd.ParseAuthMode(string(config.Auth)))
	if config.Username != "" {
		fmt.Fprintf(w, "  Username: %s\n", config.Username)
	}
	if config.Timeout != "" {
		fmt.Fprintf(w, "  Timeout: %s\n", config.Timeout)
	}
}

// loadOrCreateConfig loads existing config or creates a new one
func loadOrCreateConfig(configFile string, loadConfig func(string) (*cmd.Config, error)) (*cmd.Config, bool) {
	if config, err := loadConfig(configFile); err == nil {
		return config, true
	}

	return &cmd.Config{}, false
}

// updateConfigWithProvidedValues updates config with any non-empty provided values
func updateConfigWithProvidedValues(config *cmd.Config, values configValues) {
	if values.baseURL != "" {
		config.BaseURL = values.baseURL
	}
	if values.repo != "" {
		config.Repo = values.repo
	}
	if values.username != "" {
		config.Username = values.username
	}
	if values.auth != "" {
		config.Auth = cmd.AuthMode(values.auth)
	}
	if values.timeout != "" {
		config.Timeout = values.timeout
	}
}

// GitRepoInfo holds detected git repository information
type GitRepoInfo struct {
	Owner string
	Repo  string
}

// detectGitRepoInfo attempts to detect git repository information
func detectGitRepoInfo() (*GitRepoInfo, error) {
	if !isGitRepository() {
		return nil, fmt.Errorf("not in a git repository")
	}

	owner, repo, err := parseGitRemote()
	if err != nil {
		return nil, fmt.Errorf("failed to parse git remote: %w", err)
	}

	return &GitRepoInfo{Owner: owner, Repo: repo}, nil
}

// isGitRepository checks if current directory is in a git repository
func isGitRepository() bool {
	gitCmd := exec.Command("git", "rev-parse", "--git-dir")
	return gitCmd.Run() == nil
}

// parseGitRemote extracts owner and repo from git remote origin
func parseGitRemote() (string, string, error) {
	gitCmd := exec.Command("git", "remote", "get-url", "origin")
	output, err := gitCmd.Output()
	if err != nil {
		return "", "", err
	}

	return parseRemoteURL(strings.TrimSpace(string(output)))
}

var (
	sshRemoteRegex   = regexp.MustCompile(`git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)
	httpsRemoteRegex = regexp.MustCompile(`https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

// parseRemoteURL extracts owner and repo from the SSH and HTTPS GitHub URL formats
func parseRemoteURL(remoteURL string) (string, string, error) {
	if matches := sshRemoteRegex.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}

	if matches := httpsRemoteRegex.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}

	return "", "", fmt.Errorf("unable to parse GitHub remote URL: %s", remoteURL)
}
