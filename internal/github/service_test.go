package github

import (
	"testing"

	"github.com/alan/issuectl/internal/github/githubtest"
)

const (
	testOwner = "testnakov"
	testRepo  = "test-nakov-repo"
)

// newFakeService starts an in-memory issue service and a client authenticated against it
func newFakeService(t *testing.T) (*Client, *githubtest.Server) {
	t.Helper()
	srv := githubtest.NewServer(githubtest.Options{
		Owner:    testOwner,
		Repo:     testRepo,
		Username: "octocat",
		Token:    "s3cret",
	})
	t.Cleanup(srv.Close)
	return NewClient(srv.BaseURL(), "octocat", "s3cret"), srv
}
