// Package comments implements the comments command for reading and managing issue comments.
package comments

import (
	"fmt"
	"log/slog"

	"github.com/alan/issuectl/cmd"
	"github.com/alan/issuectl/internal/commands"
	"github.com/spf13/cobra"
)

// CommentsCommand encapsulates the comments subcommands with common functionality
type CommentsCommand struct {
	commands.BaseCommand
	Output commands.OutputFormat
}

// NewCommentsCmd creates the comments command
func NewCommentsCmd(configFile *string, loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	cc := &CommentsCommand{}
	cc.ConfigFile = configFile
	cc.LoadConfig = loadConfig

	var output string

	commentsCmd := &cobra.Command{
		Use:   "comments",
		Short: "Read, create, edit and delete issue comments",
		Long: `Read, create, edit and delete issue comments.

Examples:
  issuectl comments list 6                   # Comments on issue #6
  issuectl comments create 6 --body "LGTM"   # Comment on issue #6
  issuectl comments edit 2084562309 --body "Edited"
  issuectl comments delete 2084562309`,
	}
	commentsCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")

	setup := func(cobraCmd *cobra.Command) error {
		format, err := commands.ParseOutputFormat(output)
		if err != nil {
			return err
		}
		cc.Output = format
		cc.Out = cobraCmd.OutOrStdout()
		cc.Context = cobraCmd.Context()
		return cc.Init()
	}

	commentsCmd.AddCommand(&cobra.Command{
		Use:          "list <issue-number>",
		Short:        "List the comments on an issue",
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
			return cc.List(number)
		},
	})

	commentsCmd.AddCommand(&cobra.Command{
		Use:          "get <comment-id>",
		Short:        "Show a single comment",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			id, err := commands.ParseCommentIDFromArgs(args, 0)
			if err != nil {
				return err
			}
			if err := setup(cobraCmd); err != nil {
				return err
			}
			return cc.Get(id)
		},
	})

	var createBody string
	createCmd := &cobra.Command{
		Use:          "create <issue-number>",
		Short:        "Comment on an issue",
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
			return cc.Create(number, createBody)
		},
	}
	createCmd.Flags().StringVarP(&createBody, "body", "b", "", "Comment body")
	commentsCmd.AddCommand(createCmd)

	var editBody string
	editCmd := &cobra.Command{
		Use:          "edit <comment-id>",
		Short:        "Replace the body of a comment",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			id, err := commands.ParseCommentIDFromArgs(args, 0)
			if err != nil {
				return err
			}
			if err := setup(cobraCmd); err != nil {
				return err
			}
			return cc.Edit(id, editBody)
		},
	}
	editCmd.Flags().StringVarP(&editBody, "body", "b", "", "New comment body")
	commentsCmd.AddCommand(editCmd)

	commentsCmd.AddCommand(&cobra.Command{
		Use:          "delete <comment-id>",
		Short:        "Delete a comment",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			id, err := commands.ParseCommentIDFromArgs(args, 0)
			if err != nil {
				return err
			}
			if err := setup(cobraCmd); err != nil {
				return err
			}
			return cc.Delete(id)
		},
	})

	return commentsCmd
}

// List prints the comments on an issue
func (cc *CommentsCommand) List(number int) error {
	comments, err := cc.GitHubClient.ListIssueComments(cc.Context, cc.Config.Repo, number)
	if err != nil {
		return fmt.Errorf("failed to list comments for issue #%d: %w", number, err)
	}

	return commands.RenderComments(cc.Out, comments, cc.Output)
}

// Get prints a single comment
func (cc *CommentsCommand) Get(id int64) error {
	comment, err := cc.GitHubClient.GetComment(cc.Context, cc.Config.Repo, id)
	if err != nil {
		return fmt.Errorf("failed to get comment %d: %w", id, err)
	}

	return commands.RenderComment(cc.Out, comment, cc.Output)
}

// Create comments on an issue
func (cc *CommentsCommand) Create(number int, body string) error {
	comment, err := cc.GitHubClient.CreateComment(cc.Context, cc.Config.Repo, number, body)
	if err != nil {
		return fmt.Errorf("failed to comment on issue #%d: %w", number, err)
	}

	slog.Info("Created comment", "repo", cc.Config.Repo, "issue", number, "comment_id", comment.ID)
	if cc.Output != commands.OutputTable {
		return commands.RenderComment(cc.Out, comment, cc.Output)
	}
	commands.DisplaySuccessMessage(cc.Out, "Created comment %d on issue #%d", comment.ID, comment.IssueNumber)
	return nil
}

// Edit replaces the body of a comment
func (cc *CommentsCommand) Edit(id int64, body string) error {
	comment, err := cc.GitHubClient.EditComment(cc.Context, cc.Config.Repo, id, body)
	if err != nil {
		return fmt.Errorf("failed to edit comment %d: %w", id, err)
	}

	slog.Info("Edited comment", "repo", cc.Config.Repo, "comment_id", comment.ID)
	if cc.Output != commands.OutputTable {
		return commands.RenderComment(cc.Out, comment, cc.Output)
	}
	commands.DisplaySuccessMessage(cc.Out, "Edited comment %d", comment.ID)
	return nil
}

// Delete removes a comment
func (cc *CommentsCommand) Delete(id int64) error {
	deleted, err := cc.GitHubClient.DeleteComment(cc.Context, cc.Config.Repo, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("comment %d was not deleted", id)
	}

	slog.Info("Deleted comment", "repo", cc.Config.Repo, "comment_id", id)
	commands.DisplaySuccessMessage(cc.Out, "Deleted comment %d", id)
	return nil
}
