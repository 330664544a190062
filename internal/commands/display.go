package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alan/issuectl/internal/github"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how read commands print their results
type OutputFormat string

const (
	// OutputTable prints an aligned table
	OutputTable OutputFormat = "table"
	// OutputJSON prints indented JSON
	OutputJSON OutputFormat = "json"
	// OutputYAML prints YAML
	OutputYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates an --output flag value
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputTable, OutputJSON, OutputYAML:
		return OutputFormat(s), nil
	case "":
		return OutputTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json or yaml)", s)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	closedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	cellStyle   = lipgloss.NewStyle()
)

const maxCellWidth = 60

// RenderIssues prints issues in the requested format
func RenderIssues(w io.Writer, issues []github.Issue, format OutputFormat) error {
	if format != OutputTable {
		return renderStructured(w, issues, format)
	}

	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{
			"#" + strconv.Itoa(issue.Number),
			strconv.FormatInt(issue.ID, 10),
			styleState(issue.State),
			issue.Title,
			labelNames(issue.Labels),
			strconv.Itoa(issue.Comments),
		})
	}
	return renderTable(w, []string{"NUMBER", "ID", "STATE", "TITLE", "LABELS", "COMMENTS"}, rows, "No issues found")
}

// RenderIssue prints a single issue with its body
func RenderIssue(w io.Writer, issue *github.Issue, format OutputFormat) error {
	if format != OutputTable {
		return renderStructured(w, issue, format)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", headerStyle.Render(fmt.Sprintf("#%d", issue.Number)), headerStyle.Render(issue.Title))
	fmt.Fprintf(&b, "%s  id %d", styleState(issue.State), issue.ID)
	if issue.Author != "" {
		fmt.Fprintf(&b, "  by %s", issue.Author)
	}
	if !issue.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "  %s", mutedStyle.Render(issue.CreatedAt.Format("2006-01-02 15:04")))
	}
	b.WriteString("\n")
	if len(issue.Labels) > 0 {
		fmt.Fprintf(&b, "labels: %s\n", labelNames(issue.Labels))
	}
	if issue.URL != "" {
		fmt.Fprintf(&b, "%s\n", mutedStyle.Render(issue.URL))
	}
	if issue.Body != "" {
		fmt.Fprintf(&b, "\n%s\n", issue.Body)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderLabels prints labels in the requested format
func RenderLabels(w io.Writer, labels []github.Label, format OutputFormat) error {
	if format != OutputTable {
		return renderStructured(w, labels, format)
	}

	rows := make([][]string, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, []string{
			strconv.FormatInt(label.ID, 10),
			label.Name,
			label.Color,
			label.Description,
		})
	}
	return renderTable(w, []string{"ID", "NAME", "COLOR", "DESCRIPTION"}, rows, "No labels found")
}

// RenderComments prints comments in the requested format
func RenderComments(w io.Writer, comments []github.Comment, format OutputFormat) error {
	if format != OutputTable {
		return renderStructured(w, comments, format)
	}

	rows := make([][]string, 0, len(comments))
	for _, comment := range comments {
		rows = append(rows, commentRow(&comment))
	}
	return renderTable(w, []string{"ID", "ISSUE", "AUTHOR", "UPDATED", "BODY"}, rows, "No comments found")
}

// RenderComment prints a single comment in the requested format
func RenderComment(w io.Writer, comment *github.Comment, format OutputFormat) error {
	if format != OutputTable {
		return renderStructured(w, comment, format)
	}
	return renderTable(w, []string{"ID", "ISSUE", "AUTHOR", "UPDATED", "BODY"}, [][]string{commentRow(comment)}, "")
}

// DisplaySuccessMessage prints a standardized success message
func DisplaySuccessMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "✅ "+format+"\n", args...)
}

func commentRow(comment *github.Comment) []string {
	updated := ""
	if !comment.UpdatedAt.IsZero() {
		updated = comment.UpdatedAt.Format("2006-01-02 15:04")
	}
	return []string{
		strconv.FormatInt(comment.ID, 10),
		"#" + strconv.Itoa(comment.IssueNumber),
		comment.Author,
		updated,
		firstLine(comment.Body),
	}
}

func renderStructured(w io.Writer, v any, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON output: %w", err)
		}
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML output: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML output: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return nil
}

// renderTable prints rows aligned under headers as a borderless lipgloss table
func renderTable(w io.Writer, headers []string, rows [][]string, empty string) error {
	if len(rows) == 0 && empty != "" {
		_, err := fmt.Fprintln(w, mutedStyle.Render(empty))
		return err
	}

	for _, row := range rows {
		for i, cell := range row {
			row[i] = truncate(cell, maxCellWidth)
		}
	}

	last := len(headers) - 1
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Wrap(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if row == table.HeaderRow {
				style = headerStyle
			}
			if col < last {
				style = style.PaddingRight(2)
			}
			return style
		})

	_, err := fmt.Fprintln(w, strings.TrimRight(t.String(), "\n"))
	return err
}

func styleState(state github.IssueState) string {
	switch state {
	case github.IssueStateOpen:
		return openStyle.Render(string(state))
	case github.IssueStateClosed:
		return closedStyle.Render(string(state))
	default:
		return string(state)
	}
}

func labelNames(labels []github.Label) string {
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		names = append(names, label.Name)
	}
	return strings.Join(names, ", ")
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx] + " …"
	}
	return s
}

// truncate shortens unstyled text to limit runes
func truncate(s string, limit int) string {
	if lipgloss.Width(s) <= limit || strings.Contains(s, "\x1b") {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// StepResult is the outcome of one step of a multi-step command
type StepResult struct {
	Name   string
	Detail string
	Err    error
}

// RenderSteps prints one line per step with a pass/fail marker
func RenderSteps(w io.Writer, steps []StepResult) error {
	rows := make([][]string, 0, len(steps))
	for _, step := range steps {
		status, detail := "✅", step.Detail
		if step.Err != nil {
			status, detail = "❌", step.Err.Error()
		}
		rows = append(rows, []string{status, step.Name, detail})
	}
	return renderTable(w, []string{"", "STEP", "RESULT"}, rows, "No steps run")
}
