package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/go-github/v57/github"
)

// ListIssueComments fetches the comments on an issue. An issue without comments
// yields an empty slice.
func (c *Client) ListIssueComments(ctx context.Context, repo string, number int) ([]Comment, error) {
	if err := checkNumber("issue number", number); err != nil {
		return nil, err
	}

	var wire []*github.IssueComment
	resp, err := c.call(ctx, http.MethodGet, nil, &wire, repo, "issues", strconv.Itoa(number), "comments")
	if err != nil {
		return nil, err
	}

	comments, err := commentsFromWire(wire)
	if err != nil {
		return nil, resp.malformed(err)
	}
	for i := range comments {
		if comments[i].IssueNumber == 0 {
			comments[i].IssueNumber = number
		}
	}
	return comments, nil
}

// CreateComment adds a comment to an issue
func (c *Client) CreateComment(ctx context.Context, repo string, number int, body string) (*Comment, error) {
	if err := checkNumber("issue number", number); err != nil {
		return nil, err
	}

	input := &github.IssueComment{
		Body: github.String(body),
	}

	var wire github.IssueComment
	resp, err := c.call(ctx, http.MethodPost, input, &wire, repo, "issues", strconv.Itoa(number), "comments")
	if err != nil {
		return nil, err
	}

	comment, err := commentFromWire(&wire)
	if err != nil {
		return nil, resp.malformed(err)
	}

	switch comment.IssueNumber {
	case 0:
		comment.IssueNumber = number
	case number:
	default:
		return nil, resp.malformed(fmt.Errorf("comment %d was created on issue #%d, want #%d", comment.ID, comment.IssueNumber, number))
	}
	return comment, nil
}

// GetComment fetches a single comment by id
func (c *Client) GetComment(ctx context.Context, repo string, id int64) (*Comment, error) {
	if err := checkNumber("comment id", id); err != nil {
		return nil, err
	}

	var wire github.IssueComment
	resp, err := c.call(ctx, http.MethodGet, nil, &wire, commentPath(repo, id)...)
	if err != nil {
		return nil, err
	}

	comment, err := commentFromWire(&wire)
	if err == nil {
		err = requireIssueNumber(comment)
	}
	if err != nil {
		return nil, resp.malformed(err)
	}
	return comment, nil
}

// EditComment replaces the body of a comment
func (c *Client) EditComment(ctx context.Context, repo string, id int64, body string) (*Comment, error) {
	if err := checkNumber("comment id", id); err != nil {
		return nil, err
	}

	input := &github.IssueComment{
		Body: github.String(body),
	}

	var wire github.IssueComment
	resp, err := c.call(ctx, http.MethodPatch, input, &wire, commentPath(repo, id)...)
	if err != nil {
		return nil, err
	}

	comment, err := commentFromWire(&wire)
	if err == nil {
		err = requireIssueNumber(comment)
	}
	if err != nil {
		return nil, resp.malformed(err)
	}
	if comment.ID != id {
		return nil, resp.malformed(fmt.Errorf("edited comment %d came back as %d", id, comment.ID))
	}
	return comment, nil
}

// DeleteComment removes a comment. It returns true when the service confirms the
// deletion; any other outcome returns false together with the classified error,
// so deleting an already deleted comment reports NotFound.
func (c *Client) DeleteComment(ctx context.Context, repo string, id int64) (bool, error) {
	if err := checkNumber("comment id", id); err != nil {
		return false, err
	}

	if _, err := c.call(ctx, http.MethodDelete, nil, nil, commentPath(repo, id)...); err != nil {
		return false, err
	}
	return true, nil
}

// requireIssueNumber rejects a comment fetched by id whose parent issue is unknown.
// Calls addressed by issue number fill it in instead.
func requireIssueNumber(comment *Comment) error {
	if comment.IssueNumber == 0 {
		return fmt.Errorf("comment %d is missing issue_url", comment.ID)
	}
	return nil
}

func commentPath(repo string, id int64) []string {
	return []string{repo, "issues", "comments", strconv.FormatInt(id, 10)}
}
