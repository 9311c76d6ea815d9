package testing

import (
	"regexp"
	"strings"
)

var (
	ansiRegex       = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// StripANSI removes all ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// NormalizeWhitespace collapses whitespace runs to single spaces.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// ContainsInOrder reports whether output contains every expected string,
// each after the previous one.
func ContainsInOrder(output string, expected ...string) bool {
	rest := output
	for _, exp := range expected {
		i := strings.Index(rest, exp)
		if i == -1 {
			return false
		}
		rest = rest[i+len(exp):]
	}
	return true
}
