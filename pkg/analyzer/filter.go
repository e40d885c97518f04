package analyzer

import (
	"strings"
	"unicode/utf8"

	"github.com/NVIDIA/kubenum/pkg/defaults"
)

// matchesAny reports whether value contains any of the patterns, ignoring case.
// An empty value never matches.
func matchesAny(value string, patterns []string) bool {
	if value == "" {
		return false
	}
	lower := strings.ToLower(value)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// skipEntry reports whether a key/value pair is suppressed by the block-list.
func skipEntry(key, value string, patterns []string) bool {
	return matchesAny(key, patterns) || matchesAny(value, patterns)
}

// skipNamespace reports whether namespace contains any of the patterns.
// Matching is case-sensitive.
func skipNamespace(namespace string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(namespace, p) {
			return true
		}
	}
	return false
}

// truncate keeps the first n characters of s and appends an ellipsis when s
// is longer than n. n <= 0 disables truncation.
func truncate(s string, n int) (string, bool) {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s, false
	}
	return string([]rune(s)[:n]) + defaults.Ellipsis, true
}
