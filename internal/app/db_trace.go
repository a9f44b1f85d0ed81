package app

import (
	"fmt"
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// placeholderRowsRegex matches two or more consecutive placeholder rows,
	// as written by bulk game stat and queue inserts.
	placeholderRowsRegex = regexp.MustCompile(`\(\$\d+(?:, ?\$\d+)*\)(?:, ?\(\$\d+(?:, ?\$\d+)*\))+`)
)

// formatDBQueryForTrace renders a query as a span name: one line, multi-row
// VALUES lists reduced to their first row and a row count, and capped length.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = placeholderRowsRegex.ReplaceAllStringFunc(normalized, collapsePlaceholderRows)
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}

func collapsePlaceholderRows(rows string) string {
	first := rows[:strings.IndexByte(rows, ')')+1]
	return fmt.Sprintf("%s /* %d rows */", first, strings.Count(rows, "("))
}
