// Package issues implements the issues command for listing, showing and creating issues.
package issues

import (
	"fmt"
	"log/slog"

	"github.com/alan/issuectl/cmd"
	"github.com/alan/issuectl/internal/commands"
	"github.com/spf13/cobra"
)

// IssuesCommand encapsulates the issues subcommands with common functionality
type IssuesCommand struct {
	commands.BaseCommand
	Output commands.OutputFormat
}

// NewIssuesCmd creates the issues command
func NewIssuesCmd(configFile *string, loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	ic := &IssuesCommand{}
	ic.ConfigFile = configFile
	ic.LoadConfig = loadConfig

	var output string

	issuesCmd := &cobra.Command{
		Use:   "issues",
		Short: "List, show and create issues",
	}
	issuesCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")

	setup := func(cobraCmd *cobra.Command) error {
		format, err := commands.ParseOutputFormat(output)
		if err != nil {
			return err
		}
		ic.Output = format
		ic.Out = cobraCmd.OutOrStdout()
		ic.Context = cobraCmd.Context()
		return ic.Init()
	}

	issuesCmd.AddCommand(&cobra.Command{
		Use:          "list",
		Short:        "List the issues of the configured repository",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			if err := setup(cobraCmd); err != nil {
				return err
			}
			return ic.List()
		},
	})

	issuesCmd.AddCommand(&cobra.Command{
		Use:          "get <number>",
		Short:        "Show a single issue",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			number, err := commands.ParseIssueNumberFromArgs(args, 0)
			if err != nil {
				return err
			}
			if err := setup(cobraCmd); err != nil {
				return err
			}
			return ic.Get(number)
		},
	})

	var title, body string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new issue",
		Long: `Open a new issue in the configured repository.

Examples:
  issuectl issues create --title "Crash on save" --body "Steps to reproduce..."`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}
			if err := setup(cobraCmd); err != nil {
				return err
			}
			return ic.Create(title, body)
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Issue title")
	createCmd.Flags().StringVarP(&body, "body", "b", "", "Issue body")
	issuesCmd.AddCommand(createCmd)

	return issuesCmd
}

// List prints every issue in the repository
func (ic *IssuesCommand) List() error {
	issues, err := ic.GitHubClient.ListIssues(ic.Context, ic.Config.Repo)
	if err != nil {
		return fmt.Errorf("failed to list issues: %w", err)
	}

	slog.Debug("Listed issues", "repo", ic.Config.Repo, "count", len(issues))
	return commands.RenderIssues(ic.Out, issues, ic.Output)
}

// Get prints a single issue
func (ic *IssuesCommand) Get(number int) error {
	issue, err := ic.GitHubClient.GetIssue(ic.Context, ic.Config.Repo, number)
	if err != nil {
		return fmt.Errorf("failed to get issue #%d: %w", number, err)
	}

	return commands.RenderIssue(ic.Out, issue, ic.Output)
}

// Create opens an issue and prints its number
func (ic *IssuesCommand) Create(title, body string) error {
	issue, err := ic.GitHubClient.CreateIssue(ic.Context, ic.Config.Repo, title, body)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}

	slog.Info("Created issue", "repo", ic.Config.Repo, "number", issue.Number, "id", issue.ID)
	if ic.Output != commands.OutputTable {
		return commands.RenderIssue(ic.Out, issue, ic.Output)
	}
	commands.DisplaySuccessMessage(ic.Out, "Created issue #%d: %s", issue.Number, issue.Title)
	return nil
}
