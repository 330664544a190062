package github

import "time"

// IssueState is the open/closed state of an issue
type IssueState string

const (
	// IssueStateOpen indicates the issue is open
	IssueStateOpen IssueState = "open"
	// IssueStateClosed indicates the issue is closed
	IssueStateClosed IssueState = "closed"
)

// Issue represents an issue in a repository
type Issue struct {
	ID        int64      `json:"id" yaml:"id"`
	Number    int        `json:"number" yaml:"number"`
	Title     string     `json:"title" yaml:"title"`
	Body      string     `json:"body" yaml:"body"`
	State     IssueState `json:"state" yaml:"state"`
	Labels    []Label    `json:"labels" yaml:"labels"`
	Author    string     `json:"author,omitempty" yaml:"author,omitempty"`
	URL       string     `json:"url,omitempty" yaml:"url,omitempty"`
	Comments  int        `json:"comments" yaml:"comments"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" yaml:"updated_at"`
}

// Label represents a label attached to an issue
type Label struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Comment represents a comment on an issue
type Comment struct {
	ID          int64     `json:"id" yaml:"id"`
	IssueNumber int       `json:"issue_number" yaml:"issue_number"` // Parent issue, derived from issue_url; always positive
	Body        string    `json:"body" yaml:"body"`
	Author      string    `json:"author,omitempty" yaml:"author,omitempty"`
	URL         string    `json:"url,omitempty" yaml:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}
