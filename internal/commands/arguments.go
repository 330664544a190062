package commands

import (
	"fmt"
	"strconv"
)

// ParseIssueNumberFromArgs parses the issue number at position idx of the command arguments
func ParseIssueNumberFromArgs(args []string, idx int) (int, error) {
	if len(args) <= idx {
		return 0, fmt.Errorf("issue number is required")
	}

	number, err := strconv.Atoi(args[idx])
	if err != nil {
		return 0, fmt.Errorf("invalid issue number: %w", err)
	}
	if number <= 0 {
		return 0, fmt.Errorf("invalid issue number: %d must be positive", number)
	}
	return number, nil
}

// ParseCommentIDFromArgs parses the comment id at position idx of the command arguments
func ParseCommentIDFromArgs(args []string, idx int) (int64, error) {
	if len(args) <= idx {
		return 0, fmt.Errorf("comment id is required")
	}

	id, err := strconv.ParseInt(args[idx], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid comment id: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid comment id: %d must be positive", id)
	}
	return id, nil
}
