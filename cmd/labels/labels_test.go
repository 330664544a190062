package labels

import (
	"bytes"
	"testing"

	"github.com/alan/issuectl/cmd"
	"github.com/alan/issuectl/internal/github/githubtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelsList(t *testing.T) {
	t.Setenv("ISSUECTL_TOKEN", "s3cret")
	t.Setenv("ISSUECTL_USERNAME", "")

	srv := githubtest.NewServer(githubtest.Options{
		Owner:    "testnakov",
		Repo:     "test-nakov-repo",
		Username: "octocat",
		Token:    "s3cret",
	})
	defer srv.Close()
	srv.AddIssue("Labelled", "", "bug", "help wanted")
	srv.AddIssue("Unlabelled", "")

	loadConfig := func(string) (*cmd.Config, error) {
		return &cmd.Config{BaseURL: srv.BaseURL(), Repo: "test-nakov-repo", Username: "octocat"}, nil
	}

	tests := []struct {
		name     string
		args     []string
		contains []string
		wantErr  string
	}{
		{
			name:     "table",
			args:     []string{"list", "1"},
			contains: []string{"NAME", "bug", "help wanted"},
		},
		{
			name:     "yaml",
			args:     []string{"list", "1", "-o", "yaml"},
			contains: []string{"name: bug", "name: help wanted"},
		},
		{
			name:     "issue without labels",
			args:     []string{"list", "2"},
			contains: []string{"No labels found"},
		},
		{
			name:     "json for issue without labels",
			args:     []string{"list", "2", "-o", "json"},
			contains: []string{"[]"},
		},
		{
			name:    "missing issue",
			args:    []string{"list", "99"},
			wantErr: "failed to list labels for issue #99",
		},
		{
			name:    "invalid issue number",
			args:    []string{"list", "0"},
			wantErr: "invalid issue number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := "issuectl.yaml"
			labelsCmd := NewLabelsCmd(&configFile, loadConfig)

			var out bytes.Buffer
			labelsCmd.SetOut(&out)
			labelsCmd.SetErr(&out)
			labelsCmd.SetArgs(tt.args)
			err := labelsCmd.Execute()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}
