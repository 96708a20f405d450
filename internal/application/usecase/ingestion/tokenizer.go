// Package ingestion contains the use cases that turn uploaded statements and receipts into transactions.
package ingestion

import (
	"regexp"
	"strings"
)

var lineBreakRegex = regexp.MustCompile(`\r\n|\r|\n`)

// Tokenize splits extracted text into trimmed, non-empty lines, preserving their order.
func Tokenize(raw string) []string {
	parts := lineBreakRegex.Split(raw, -1)
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
