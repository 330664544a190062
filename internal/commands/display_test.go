package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alan/issuectl/internal/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleIssues() []github.Issue {
	return []github.Issue{
		{
			ID:       2001,
			Number:   6,
			Title:    "Crash on save",
			State:    github.IssueStateOpen,
			Labels:   []github.Label{{ID: 1, Name: "bug"}, {ID: 2, Name: "urgent"}},
			Comments: 3,
		},
		{
			ID:     2000,
			Number: 5,
			Title:  "Docs typo",
			State:  github.IssueStateClosed,
		},
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{input: "", want: OutputTable},
		{input: "table", want: OutputTable},
		{input: "json", want: OutputJSON},
		{input: "yaml", want: OutputYAML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderIssues_Table(t *testing.T) {
	out := &bytes.Buffer{}

	err := RenderIssues(out, sampleIssues(), OutputTable)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "NUMBER")
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[1], "#6")
	assert.Contains(t, lines[1], "Crash on save")
	assert.Contains(t, lines[1], "bug, urgent")
	assert.Contains(t, lines[2], "closed")

	// Columns line up
	assert.Equal(t, strings.Index(lines[1], "Crash"), strings.Index(lines[2], "Docs"))
}

func TestRenderIssues_Empty(t *testing.T) {
	out := &bytes.Buffer{}

	require.NoError(t, RenderIssues(out, nil, OutputTable))

	assert.Contains(t, out.String(), "No issues found")
}

func TestRenderIssues_JSON(t *testing.T) {
	out := &bytes.Buffer{}

	require.NoError(t, RenderIssues(out, sampleIssues(), OutputJSON))

	var decoded []github.Issue
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, sampleIssues(), decoded)
}

func TestRenderComments_YAML(t *testing.T) {
	comments := []github.Comment{{ID: 9, IssueNumber: 6, Body: "looks good"}}
	out := &bytes.Buffer{}

	require.NoError(t, RenderComments(out, comments, OutputYAML))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 9, decoded[0]["id"])
	assert.Equal(t, 6, decoded[0]["issue_number"])
	assert.Equal(t, "looks good", decoded[0]["body"])
}

func TestRenderComment_Table(t *testing.T) {
	comment := &github.Comment{
		ID:          77,
		IssueNumber: 6,
		Author:      "octocat",
		Body:        "first line\nsecond line",
		UpdatedAt:   time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
	}
	out := &bytes.Buffer{}

	require.NoError(t, RenderComment(out, comment, OutputTable))

	assert.Contains(t, out.String(), "77")
	assert.Contains(t, out.String(), "#6")
	assert.Contains(t, out.String(), "2024-03-01 12:30")
	assert.Contains(t, out.String(), "first line …")
	assert.NotContains(t, out.String(), "second line")
}

func TestRenderIssue(t *testing.T) {
	issue := sampleIssues()[0]
	issue.Body = "Steps to reproduce"
	out := &bytes.Buffer{}

	require.NoError(t, RenderIssue(out, &issue, OutputTable))

	assert.Contains(t, out.String(), "#6")
	assert.Contains(t, out.String(), "Crash on save")
	assert.Contains(t, out.String(), "labels: bug, urgent")
	assert.Contains(t, out.String(), "Steps to reproduce")
}

func TestRenderLabels(t *testing.T) {
	out := &bytes.Buffer{}

	require.NoError(t, RenderLabels(out, []github.Label{}, OutputTable))
	assert.Contains(t, out.String(), "No labels found")

	out.Reset()
	require.NoError(t, RenderLabels(out, []github.Label{{ID: 3, Name: "bug", Color: "f29513"}}, OutputTable))
	assert.Contains(t, out.String(), "f29513")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefghij", 5))
}

func TestDisplaySuccessMessage(t *testing.T) {
	out := &bytes.Buffer{}

	DisplaySuccessMessage(out, "Deleted comment %d", 42)

	assert.Equal(t, "✅ Deleted comment 42\n", out.String())
}

func TestRenderSteps(t *testing.T) {
	out := &bytes.Buffer{}
	steps := []StepResult{
		{Name: "create issue", Detail: "#1 (id 1001)"},
		{Name: "get deleted comment", Err: errors.New("still readable")},
	}

	require.NoError(t, RenderSteps(out, steps))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "STEP")
	assert.Contains(t, lines[1], "✅")
	assert.Contains(t, lines[2], "❌")
	assert.Contains(t, lines[2], "still readable")

	// Columns line up
	assert.Equal(t, strings.Index(lines[1], "#1"), strings.Index(lines[2], "still"))
}

func TestRenderIssues_TruncatesLongCells(t *testing.T) {
	issues := sampleIssues()[:1]
	issues[0].Title = strings.Repeat("x", maxCellWidth+20)
	out := &bytes.Buffer{}

	require.NoError(t, RenderIssues(out, issues, OutputTable))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], strings.Repeat("x", maxCellWidth-1)+"…")
	assert.NotContains(t, lines[1], strings.Repeat("x", maxCellWidth))
}
