package util

import (
	"strconv"
	"strings"
)

// Rule is one literal substring rewrite. Tables of rules are applied in
// order: later rules may target the output of earlier ones, so collapsing
// double spaces has to come before matching a multi-word label.
type Rule struct {
	Old string
	New string
}

// Rewrite applies every rule in order via non-overlapping literal
// replacement. It is deliberately not a bijection: distinct historical
// names collapsing onto one canonical string is the point.
func Rewrite(input string, rules []Rule) string {
	s := input
	for _, r := range rules {
		s = strings.ReplaceAll(s, r.Old, r.New)
	}
	return s
}

// ParseCount parses a scraped tally cell. Separator spaces, breaking or not,
// are stripped and a wholly absent value counts as zero; anything else must
// be a base-10 integer.
func ParseCount(input string) (int, error) {
	s := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(input, " ", " "), " ", ""))
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// HasDigit reports whether the string contains at least one ASCII digit.
func HasDigit(input string) bool {
	for _, r := range input {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// NormalizeSpaces strips NBSPs and collapses whitespace runs.
func NormalizeSpaces(input string) string {
	fields := strings.Fields(strings.ReplaceAll(input, " ", " "))
	return strings.Join(fields, " ")
}
