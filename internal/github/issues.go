package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/go-github/v57/github"
)

// ListIssues fetches the issues of a repository in the order the service returns them.
// Only the first page the service returns is included.
func (c *Client) ListIssues(ctx context.Context, repo string) ([]Issue, error) {
	var wire []*github.Issue
	resp, err := c.call(ctx, http.MethodGet, nil, &wire, repo, "issues")
	if err != nil {
		return nil, err
	}

	issues, err := issuesFromWire(wire)
	if err != nil {
		return nil, resp.malformed(err)
	}
	return issues, nil
}

// GetIssue fetches a single issue by its repository-scoped number
func (c *Client) GetIssue(ctx context.Context, repo string, number int) (*Issue, error) {
	if err := checkNumber("issue number", number); err != nil {
		return nil, err
	}

	var wire github.Issue
	resp, err := c.call(ctx, http.MethodGet, nil, &wire, repo, "issues", strconv.Itoa(number))
	if err != nil {
		return nil, err
	}

	issue, err := issueFromWire(&wire)
	if err != nil {
		return nil, resp.malformed(err)
	}
	return issue, nil
}

// CreateIssue opens a new issue with the given title and body
func (c *Client) CreateIssue(ctx context.Context, repo, title, body string) (*Issue, error) {
	if title == "" {
		return nil, fmt.Errorf("issue title must not be empty: %w", ErrInvalidArgument)
	}

	input := &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	}

	var wire github.Issue
	resp, err := c.call(ctx, http.MethodPost, input, &wire, repo, "issues")
	if err != nil {
		return nil, err
	}

	issue, err := issueFromWire(&wire)
	if err != nil {
		return nil, resp.malformed(err)
	}
	return issue, nil
}

// checkNumber rejects identifiers the service can never have issued
func checkNumber[T int | int64](name string, v T) error {
	if v <= 0 {
		return fmt.Errorf("%s must be positive, got %d: %w", name, v, ErrInvalidArgument)
	}
	return nil
}
