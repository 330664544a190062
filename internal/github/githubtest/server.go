// Package githubtest provides an in-memory issue service speaking the subset of the
// GitHub REST API used by package github.
package githubtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v57/github"
)

// Options configures a Server
type Options struct {
	Owner    string
	Repo     string
	Username string
	Token    string
}

type issue struct {
	id        int64
	number    int
	title     string
	body      string
	labels    []*github.Label
	createdAt time.Time
	updatedAt time.Time
}

type comment struct {
	id          int64
	issueNumber int
	body        string
	createdAt   time.Time
	updatedAt   time.Time
}

// Server is a fake issue service for a single owner/repository
type Server struct {
	*httptest.Server
	opts Options

	mu            sync.Mutex
	issues        []*issue // ordered by creation
	comments      map[int64]*comment
	nextIssueID   int64
	nextCommentID int64
	nextLabelID   int64
	requests      []string
}

// NewServer starts a fake service. Callers must Close it.
func NewServer(opts Options) *Server {
	s := &Server{
		opts:          opts,
		comments:      make(map[int64]*comment),
		nextIssueID:   1000,
		nextCommentID: 5000,
		nextLabelID:   100,
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	return s
}

// BaseURL returns the owner-scoped base URL, ending in a slash
func (s *Server) BaseURL() string {
	return fmt.Sprintf("%s/repos/%s/", s.URL, s.opts.Owner)
}

// AddIssue seeds an issue with the named labels and returns its number
func (s *Server) AddIssue(title, body string, labels ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	is := s.newIssue(title, body)
	for _, name := range labels {
		s.nextLabelID++
		is.labels = append(is.labels, &github.Label{
			ID:    github.Int64(s.nextLabelID),
			Name:  github.String(name),
			Color: github.String("ededed"),
		})
	}
	return is.number
}

// AddComment seeds a comment on an existing issue and returns its id
func (s *Server) AddComment(number int, body string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newComment(number, body).id
}

// Requests returns "METHOD path" for every request received so far
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) newIssue(title, body string) *issue {
	s.nextIssueID++
	now := time.Now().UTC().Truncate(time.Second)
	is := &issue{
		id:        s.nextIssueID,
		number:    len(s.issues) + 1,
		title:     title,
		body:      body,
		createdAt: now,
		updatedAt: now,
	}
	s.issues = append(s.issues, is)
	return is
}

func (s *Server) newComment(number int, body string) *comment {
	s.nextCommentID++
	now := time.Now().UTC().Truncate(time.Second)
	c := &comment{
		id:          s.nextCommentID,
		issueNumber: number,
		body:        body,
		createdAt:   now,
		updatedAt:   now,
	}
	s.comments[c.id] = c
	return c
}

func (s *Server) issue(number int) *issue {
	if number < 1 || number > len(s.issues) {
		return nil
	}
	return s.issues[number-1]
}

func (s *Server) authorized(r *http.Request) bool {
	if user, pass, ok := r.BasicAuth(); ok {
		return user == s.opts.Username && pass == s.opts.Token
	}
	return r.Header.Get("Authorization") == "Bearer "+s.opts.Token
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, r.Method+" "+r.URL.Path)

	if !s.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Bad credentials")
		return
	}

	prefix := fmt.Sprintf("/repos/%s/%s/issues", s.opts.Owner, s.opts.Repo)
	if r.URL.Path != prefix && !strings.HasPrefix(r.URL.Path, prefix+"/") {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/"), "/")
	if parts[0] == "" {
		parts = nil
	}

	switch {
	case len(parts) == 0:
		s.handleIssues(w, r)
	case len(parts) == 2 && parts[0] == "comments":
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, "Not Found")
			return
		}
		s.handleComment(w, r, id)
	default:
		number, err := strconv.Atoi(parts[0])
		is := s.issue(number)
		if err != nil || is == nil {
			writeError(w, http.StatusNotFound, "Not Found")
			return
		}
		switch {
		case len(parts) == 1 && r.Method == http.MethodGet:
			writeJSON(w, http.StatusOK, s.wireIssue(is))
		case len(parts) == 2 && parts[1] == "labels" && r.Method == http.MethodGet:
			labels := is.labels
			if labels == nil {
				labels = []*github.Label{}
			}
			writeJSON(w, http.StatusOK, labels)
		case len(parts) == 2 && parts[1] == "comments":
			s.handleIssueComments(w, r, is)
		default:
			writeError(w, http.StatusNotFound, "Not Found")
		}
	}
}

func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		out := make([]*github.Issue, 0, len(s.issues))
		for i := len(s.issues) - 1; i >= 0; i-- {
			out = append(out, s.wireIssue(s.issues[i]))
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		var req github.IssueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Problems parsing JSON")
			return
		}
		if req.GetTitle() == "" {
			writeError(w, http.StatusUnprocessableEntity, "Validation Failed")
			return
		}
		writeJSON(w, http.StatusCreated, s.wireIssue(s.newIssue(req.GetTitle(), req.GetBody())))
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

func (s *Server) handleIssueComments(w http.ResponseWriter, r *http.Request, is *issue) {
	switch r.Method {
	case http.MethodGet:
		out := []*github.IssueComment{}
		for _, c := range s.sortedComments() {
			if c.issueNumber == is.number {
				out = append(out, s.wireComment(c))
			}
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		var req github.IssueComment
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Problems parsing JSON")
			return
		}
		writeJSON(w, http.StatusCreated, s.wireComment(s.newComment(is.number, req.GetBody())))
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request, id int64) {
	c, ok := s.comments[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.wireComment(c))
	case http.MethodPatch:
		var req github.IssueComment
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Problems parsing JSON")
			return
		}
		c.body = req.GetBody()
		c.updatedAt = time.Now().UTC().Truncate(time.Second)
		writeJSON(w, http.StatusOK, s.wireComment(c))
	case http.MethodDelete:
		delete(s.comments, id)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

func (s *Server) sortedComments() []*comment {
	out := make([]*comment, 0, len(s.comments))
	for _, c := range s.comments {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (s *Server) wireIssue(is *issue) *github.Issue {
	var count int
	for _, c := range s.comments {
		if c.issueNumber == is.number {
			count++
		}
	}

	return &github.Issue{
		ID:        github.Int64(is.id),
		Number:    github.Int(is.number),
		Title:     github.String(is.title),
		Body:      github.String(is.body),
		State:     github.String("open"),
		Labels:    is.labels,
		Comments:  github.Int(count),
		User:      &github.User{Login: github.String(s.opts.Username)},
		HTMLURL:   github.String(fmt.Sprintf("%s/%s/%s/issues/%d", s.URL, s.opts.Owner, s.opts.Repo, is.number)),
		CreatedAt: &github.Timestamp{Time: is.createdAt},
		UpdatedAt: &github.Timestamp{Time: is.updatedAt},
	}
}

func (s *Server) wireComment(c *comment) *github.IssueComment {
	return &github.IssueComment{
		ID:        github.Int64(c.id),
		Body:      github.String(c.body),
		User:      &github.User{Login: github.String(s.opts.Username)},
		IssueURL:  github.String(fmt.Sprintf("%s/repos/%s/%s/issues/%d", s.URL, s.opts.Owner, s.opts.Repo, c.issueNumber)),
		HTMLURL:   github.String(fmt.Sprintf("%s/%s/%s/issues/%d#issuecomment-%d", s.URL, s.opts.Owner, s.opts.Repo, c.issueNumber, c.id)),
		CreatedAt: &github.Timestamp{Time: c.createdAt},
		UpdatedAt: &github.Timestamp{Time: c.updatedAt},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, &github.ErrorResponse{
		Message:          message,
		DocumentationURL: "https://docs.github.com/rest",
	})
}
