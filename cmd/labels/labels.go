// Package labels implements the labels command for showing the labels attached to an issue.
package labels

import (
	"fmt"

	"github.com/alan/issuectl/cmd"
	"github.com/alan/issuectl/internal/commands"
	"github.com/spf13/cobra"
)

// LabelsCommand encapsulates the labels command with common functionality
type LabelsCommand struct {
	commands.BaseCommand
	IssueNumber int
	Output      commands.OutputFormat
}

// NewLabelsCmd creates the labels command
func NewLabelsCmd(configFile *string, loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	lc := &LabelsCommand{}
	lc.ConfigFile = configFile
	lc.LoadConfig = loadConfig

	var output string

	labelsCmd := &cobra.Command{
		Use:   "labels",
		Short: "Show labels attached to issues",
	}

	listCmd := &cobra.Command{
		Use:          "list <issue-number>",
		Short:        "List the labels attached to an issue",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			number, err := commands.ParseIssueNumberFromArgs(args, 0)
			if err != nil {
				return err
			}
			lc.IssueNumber = number

			format, err := commands.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			lc.Output = format
			lc.Out = cobraCmd.OutOrStdout()
			lc.Context = cobraCmd.Context()
			if err := lc.Init(); err != nil {
				return err
			}

			return lc.Run()
		},
	}
	listCmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")
	labelsCmd.AddCommand(listCmd)

	return labelsCmd
}

// Run prints the labels of the selected issue
func (lc *LabelsCommand) Run() error {
	labels, err := lc.GitHubClient.ListIssueLabels(lc.Context, lc.Config.Repo, lc.IssueNumber)
	if err != nil {
		return fmt.Errorf("failed to list labels for issue #%d: %w", lc.IssueNumber, err)
	}

	return commands.RenderLabels(lc.Out, labels, lc.Output)
}
