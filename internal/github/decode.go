package github

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-github/v57/github"
)

// The service's JSON documents are decoded into go-github structs first. Their
// pointer fields let a missing field be told apart from a zero value, which is
// what makes the conversions below fail closed.

func issueFromWire(w *github.Issue) (*Issue, error) {
	if w == nil {
		return nil, fmt.Errorf("issue is null")
	}
	if w.ID == nil {
		return nil, fmt.Errorf("issue is missing id")
	}
	if w.Number == nil {
		return nil, fmt.Errorf("issue %d is missing number", w.GetID())
	}
	if w.GetID() <= 0 {
		return nil, fmt.Errorf("issue has non-positive id %d", w.GetID())
	}
	if w.GetNumber() <= 0 {
		return nil, fmt.Errorf("issue %d has non-positive number %d", w.GetID(), w.GetNumber())
	}

	labels, err := labelsFromWire(w.Labels)
	if err != nil {
		return nil, fmt.Errorf("issue #%d: %w", w.GetNumber(), err)
	}

	return &Issue{
		ID:        w.GetID(),
		Number:    w.GetNumber(),
		Title:     w.GetTitle(),
		Body:      w.GetBody(),
		State:     IssueState(w.GetState()),
		Labels:    labels,
		Author:    w.GetUser().GetLogin(),
		URL:       w.GetHTMLURL(),
		Comments:  w.GetComments(),
		CreatedAt: w.GetCreatedAt().Time,
		UpdatedAt: w.GetUpdatedAt().Time,
	}, nil
}

func issuesFromWire(ws []*github.Issue) ([]Issue, error) {
	issues := make([]Issue, 0, len(ws))
	for i, w := range ws {
		issue, err := issueFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		issues = append(issues, *issue)
	}
	return issues, nil
}

func labelFromWire(w *github.Label) (*Label, error) {
	if w == nil {
		return nil, fmt.Errorf("label is null")
	}
	if w.ID == nil {
		return nil, fmt.Errorf("label %q is missing id", w.GetName())
	}
	if w.GetID() <= 0 {
		return nil, fmt.Errorf("label %q has non-positive id %d", w.GetName(), w.GetID())
	}

	return &Label{
		ID:          w.GetID(),
		Name:        w.GetName(),
		Color:       w.GetColor(),
		Description: w.GetDescription(),
	}, nil
}

func labelsFromWire(ws []*github.Label) ([]Label, error) {
	labels := make([]Label, 0, len(ws))
	for i, w := range ws {
		label, err := labelFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("label %d: %w", i, err)
		}
		labels = append(labels, *label)
	}
	return labels, nil
}

func commentFromWire(w *github.IssueComment) (*Comment, error) {
	if w == nil {
		return nil, fmt.Errorf("comment is null")
	}
	if w.ID == nil {
		return nil, fmt.Errorf("comment is missing id")
	}
	if w.GetID() <= 0 {
		return nil, fmt.Errorf("comment has non-positive id %d", w.GetID())
	}

	var issueNumber int
	if w.IssueURL != nil {
		n, err := issueNumberFromURL(w.GetIssueURL())
		if err != nil {
			return nil, fmt.Errorf("comment %d: %w", w.GetID(), err)
		}
		issueNumber = n
	}

	return &Comment{
		ID:          w.GetID(),
		IssueNumber: issueNumber,
		Body:        w.GetBody(),
		Author:      w.GetUser().GetLogin(),
		URL:         w.GetHTMLURL(),
		CreatedAt:   w.GetCreatedAt().Time,
		UpdatedAt:   w.GetUpdatedAt().Time,
	}, nil
}

func commentsFromWire(ws []*github.IssueComment) ([]Comment, error) {
	comments := make([]Comment, 0, len(ws))
	for i, w := range ws {
		comment, err := commentFromWire(w)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		comments = append(comments, *comment)
	}
	return comments, nil
}

// issueNumberFromURL extracts N from an issue API URL ending in /issues/N
func issueNumberFromURL(issueURL string) (int, error) {
	trimmed := strings.TrimSuffix(issueURL, "/")
	idx := strings.LastIndex(trimmed, "/issues/")
	if idx < 0 {
		return 0, fmt.Errorf("unexpected issue_url %q", issueURL)
	}

	number, err := strconv.Atoi(trimmed[idx+len("/issues/"):])
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("unexpected issue_url %q", issueURL)
	}
	return number, nil
}
