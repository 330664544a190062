package github

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/go-github/v57/github"
)

// ListIssueLabels fetches the labels attached to an issue. An issue without labels
// yields an empty slice.
func (c *Client) ListIssueLabels(ctx context.Context, repo string, number int) ([]Label, error) {
	if err := checkNumber("issue number", number); err != nil {
		return nil, err
	}

	var wire []*github.Label
	resp, err := c.call(ctx, http.MethodGet, nil, &wire, repo, "issues", strconv.Itoa(number), "labels")
	if err != nil {
		return nil, err
	}

	labels, err := labelsFromWire(wire)
	if err != nil {
		return nil, resp.malformed(err)
	}
	return labels, nil
}
