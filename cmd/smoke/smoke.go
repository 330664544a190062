// Package smoke implements the smoke command, which exercises every issue and comment
// operation against the configured repository.
package smoke

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alan/issuectl/cmd"
	"github.com/alan/issuectl/internal/commands"
	"github.com/alan/issuectl/internal/github"
	"github.com/spf13/cobra"
)

// SmokeCommand encapsulates the smoke command with common functionality
type SmokeCommand struct {
	commands.BaseCommand
	Title         string
	Body          string
	CommentBody   string
	EditedComment string

	steps []commands.StepResult
}

// NewSmokeCmd creates the smoke command
func NewSmokeCmd(configFile *string, loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	sc := &SmokeCommand{}

	cobraCmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run an end-to-end check of the issue and comment API",
		Long: `Run an end-to-end check of the issue and comment API.

The command creates an issue, comments on it, reads the comment back, edits it,
deletes it and finally confirms the deleted comment can no longer be read.
Each step uses the identifiers returned by the previous one.

The created issue is left open: the API offers no way to delete issues.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			sc.ConfigFile = configFile
			sc.LoadConfig = loadConfig
			sc.Out = cobraCmd.OutOrStdout()
			sc.Context = cobraCmd.Context()
			if err := sc.Init(); err != nil {
				return err
			}

			return sc.Run()
		},
	}

	cobraCmd.Flags().StringVar(&sc.Title, "title", "issuectl smoke test", "Title of the issue to create")
	cobraCmd.Flags().StringVar(&sc.Body, "body", "Created by issuectl smoke", "Body of the issue to create")
	cobraCmd.Flags().StringVar(&sc.CommentBody, "comment", "Smoke test comment", "Body of the comment to create")
	cobraCmd.Flags().StringVar(&sc.EditedComment, "edited-comment", "Smoke test comment (edited)", "Body the comment is edited to")

	return cobraCmd
}

// Run executes the workflow and prints a step summary. It stops at the first failed step.
func (sc *SmokeCommand) Run() error {
	sc.steps = nil
	err := sc.run()
	if renderErr := commands.RenderSteps(sc.Out, sc.steps); renderErr != nil && err == nil {
		err = renderErr
	}
	return err
}

func (sc *SmokeCommand) run() error {
	ctx, client, repo := sc.Context, sc.GitHubClient, sc.Config.Repo

	issue, err := client.CreateIssue(ctx, repo, sc.Title, sc.Body)
	if err == nil && issue.Title != sc.Title {
		err = fmt.Errorf("created issue has title %q, want %q", issue.Title, sc.Title)
	}
	if err := sc.record("create issue", err, func() string { return fmt.Sprintf("#%d (id %d)", issue.Number, issue.ID) }); err != nil {
		return err
	}

	comment, err := client.CreateComment(ctx, repo, issue.Number, sc.CommentBody)
	if err == nil {
		err = expectComment(comment, comment.ID, issue.Number, sc.CommentBody)
	}
	if err := sc.record("create comment", err, func() string { return fmt.Sprintf("comment %d on #%d", comment.ID, comment.IssueNumber) }); err != nil {
		return err
	}

	fetched, err := client.GetComment(ctx, repo, comment.ID)
	if err == nil {
		err = expectComment(fetched, comment.ID, issue.Number, sc.CommentBody)
	}
	if err := sc.record("get comment", err, func() string { return fmt.Sprintf("comment %d", fetched.ID) }); err != nil {
		return err
	}

	edited, err := client.EditComment(ctx, repo, comment.ID, sc.EditedComment)
	if err == nil {
		err = expectComment(edited, comment.ID, issue.Number, sc.EditedComment)
	}
	if err := sc.record("edit comment", err, func() string { return fmt.Sprintf("comment %d edited", edited.ID) }); err != nil {
		return err
	}

	reread, err := client.GetComment(ctx, repo, comment.ID)
	if err == nil {
		err = expectComment(reread, comment.ID, issue.Number, sc.EditedComment)
	}
	if err := sc.record("get edited comment", err, func() string { return fmt.Sprintf("body %q", reread.Body) }); err != nil {
		return err
	}

	deleted, err := client.DeleteComment(ctx, repo, comment.ID)
	if err == nil && !deleted {
		err = fmt.Errorf("comment %d was not deleted", comment.ID)
	}
	if err := sc.record("delete comment", err, func() string { return fmt.Sprintf("comment %d deleted", comment.ID) }); err != nil {
		return err
	}

	_, err = client.GetComment(ctx, repo, comment.ID)
	switch {
	case err == nil:
		err = fmt.Errorf("deleted comment %d is still readable", comment.ID)
	case errors.Is(err, github.ErrNotFound):
		err = nil
	}
	return sc.record("get deleted comment", err, func() string { return "not found, as expected" })
}

// record appends a step result and returns a wrapped error when the step failed.
// detail is only called for successful steps.
func (sc *SmokeCommand) record(name string, err error, detail func() string) error {
	if err != nil {
		slog.Error("Smoke step failed", "step", name, "error", err)
		sc.steps = append(sc.steps, commands.StepResult{Name: name, Err: err})
		return fmt.Errorf("smoke step %q failed: %w", name, err)
	}

	slog.Debug("Smoke step passed", "step", name)
	sc.steps = append(sc.steps, commands.StepResult{Name: name, Detail: detail()})
	return nil
}

func expectComment(c *github.Comment, id int64, issueNumber int, body string) error {
	if c.ID != id {
		return fmt.Errorf("comment id is %d, want %d", c.ID, id)
	}
	if c.IssueNumber != issueNumber {
		return fmt.Errorf("comment %d belongs to issue #%d, want #%d", c.ID, c.IssueNumber, issueNumber)
	}
	if c.Body != body {
		return fmt.Errorf("comment %d has body %q, want %q", c.ID, c.Body, body)
	}
	return nil
}
