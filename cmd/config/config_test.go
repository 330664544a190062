package config

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/alan/issuectl/cmd"
)

func TestRunConfig(t *testing.T) {
	tests := []struct {
		name       string
		values     configValues
		fileExists bool
		saveError  bool
		wantErr    bool
		wantErrMsg string
		want       cmd.Config
		wantOutput string
	}{
		{
			name: "successful init",
			values: configValues{
				baseURL:  "https://api.github.com/repos/testnakov/",
				repo:     "test-nakov-repo",
				username: "octocat",
			},
			want: cmd.Config{
				BaseURL:  "https://api.github.com/repos/testnakov/",
				Repo:     "test-nakov-repo",
				Username: "octocat",
			},
			wantOutput: "Successfully initialized",
		},
		{
			name: "successful init with bearer auth and timeout",
			values: configValues{
				baseURL: "https://api.github.com/repos/acme/",
				repo:    "widgets",
				auth:    "bearer",
				timeout: "30s",
			},
			want: cmd.Config{
				BaseURL: "https://api.github.com/repos/acme/",
				Repo:    "widgets",
				Auth:    cmd.AuthBearer,
				Timeout: "30s",
			},
			wantOutput: "Auth: bearer",
		},
		{
			name:       "partial update existing config",
			values:     configValues{repo: "newrepo", timeout: "5s"},
			fileExists: true,
			want: cmd.Config{
				BaseURL:  "https://api.github.com/repos/existingorg/",
				Repo:     "newrepo",
				Username: "existing-user",
				Timeout:  "5s",
			},
			wantOutput: "Successfully updated",
		},
		{
			name:       "missing repo",
			values:     configValues{baseURL: "https://api.github.com/repos/acme/"},
			wantErr:    true,
			wantErrMsg: "repo is required",
		},
		{
			name:       "relative base url",
			values:     configValues{baseURL: "repos/acme", repo: "widgets"},
			wantErr:    true,
			wantErrMsg: "not an absolute URL",
		},
		{
			name:       "unknown auth mode",
			values:     configValues{auth: "digest"},
			fileExists: true,
			wantErr:    true,
			wantErrMsg: "unsupported auth mode",
		},
		{
			name:       "invalid timeout",
			values:     configValues{timeout: "soon"},
			fileExists: true,
			wantErr:    true,
			wantErrMsg: "invalid timeout",
		},
		{
			name:       "save config error",
			values:     configValues{baseURL: "https://api.github.com/repos/acme/", repo: "widgets"},
			saveError:  true,
			wantErr:    true,
			wantErrMsg: "failed to save configuration: save error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Mock save function
			var savedConfig *cmd.Config
			saveConfig := func(filename string, config *cmd.Config) error {
				if tt.saveError {
					return fmt.Errorf("save error")
				}
				savedConfig = config
				return nil
			}

			// Mock load function
			loadConfig := func(filename string) (*cmd.Config, error) {
				if tt.fileExists {
					return &cmd.Config{
						BaseURL:  "https://api.github.com/repos/existingorg/",
						Repo:     "existingrepo",
						Username: "existing-user",
					}, nil
				}
				return nil, fmt.Errorf("file not found")
			}

			var out bytes.Buffer
			err := runConfig(&out, "issuectl.yaml", tt.values, loadConfig, saveConfig)

			if tt.wantErr {
				if err == nil {
					t.Errorf("runConfig() expected error, got nil")
					return
				}
				if !strings.Contains(err.Error(), tt.wantErrMsg) {
					t.Errorf("runConfig() error = %v, want error containing %v", err, tt.wantErrMsg)
				}
				if tt.saveError {
					return
				}
				if savedConfig != nil {
					t.Error("runConfig() saved an invalid config")
				}
				return
			}

			if err != nil {
				t.Errorf("runConfig() unexpected error = %v", err)
				return
			}

			if savedConfig == nil {
				t.Error("runConfig() did not save config")
				return
			}
			if *savedConfig != tt.want {
				t.Errorf("runConfig() saved %+v, want %+v", *savedConfig, tt.want)
			}
			if !strings.Contains(out.String(), tt.wantOutput) {
				t.Errorf("runConfig() output = %q, want it to contain %q", out.String(), tt.wantOutput)
			}
		})
	}
}

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name      string
		remoteURL string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"ssh with suffix", "git@github.com:testnakov/test-nakov-repo.git", "testnakov", "test-nakov-repo", false},
		{"ssh without suffix", "git@github.com:acme/widgets", "acme", "widgets", false},
		{"https with suffix", "https://github.com/acme/widgets.git", "acme", "widgets", false},
		{"https with trailing slash", "https://github.com/acme/widgets/", "acme", "widgets", false},
		{"other host", "https://gitlab.com/acme/widgets.git", "", "", true},
		{"garbage", "not a url", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := parseRemoteURL(tt.remoteURL)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseRemoteURL(%q) expected error, got nil", tt.remoteURL)
				}
				return
			}
			if err != nil {
				t.Errorf("parseRemoteURL(%q) unexpected error = %v", tt.remoteURL, err)
				return
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("parseRemoteURL(%q) = %q, %q, want %q, %q", tt.remoteURL, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestNewConfigCmd(t *testing.T) {
	loadConfig := func(filename string) (*cmd.Config, error) {
		return &cmd.Config{
			BaseURL:  "https://api.github.com/repos/testnakov/",
			Repo:     "test-nakov-repo",
			Username: "octocat",
		}, nil
	}
	saveConfig := func(filename string, config *cmd.Config) error {
		return nil
	}

	configFile := "issuectl.yaml"
	configCmd := NewConfigCmd(&configFile, loadConfig, saveConfig)

	if configCmd.Use != "config" {
		t.Errorf("NewConfigCmd() Use = %v, want %v", configCmd.Use, "config")
	}

	flags := configCmd.Flags()
	if flags.Lookup("config") != nil {
		t.Error("NewConfigCmd() should not have local config flag (it's global)")
	}
	for _, name := range []string{"base-url", "repo", "username", "auth", "timeout"} {
		if flags.Lookup(name) == nil {
			t.Errorf("NewConfigCmd() missing %s flag", name)
		}
	}

	var out bytes.Buffer
	configCmd.SetOut(&out)
	configCmd.SetArgs([]string{"show"})
	if err := configCmd.Execute(); err != nil {
		t.Fatalf("config show unexpected error = %v", err)
	}

	for _, want := range []string{"base_url: https://api.github.com/repos/testnakov/", "repo: test-nakov-repo", "username: octocat"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("config show output = %q, want it to contain %q", out.String(), want)
		}
	}
	if strings.Contains(out.String(), "timeout") {
		t.Errorf("config show output = %q, should omit empty fields", out.String())
	}
}

func TestShowMissingConfig(t *testing.T) {
	loadConfig := func(filename string) (*cmd.Config, error) {
		return nil, fmt.Errorf("failed to read config file %s: not found", filename)
	}

	var out bytes.Buffer
	err := runShow(&out, "missing.yaml", loadConfig)
	if err == nil {
		t.Fatal("runShow() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("runShow() error = %v", err)
	}
}
