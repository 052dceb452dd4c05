package strings

import (
	"strings"
)

// DefaultColumnMaxLen is the default width of free-text table columns
// (descriptions, redirect URIs, script names).
const DefaultColumnMaxLen = 48

// MinTruncateLen is the smallest width that leaves room for one rune and "...".
const MinTruncateLen = 4

// Truncate collapses s onto a single line and cuts it to maxLen runes,
// ending with "..." when shortened. maxLen is clamped to MinTruncateLen.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// TruncateMiddle keeps the head and tail of s and elides the middle. It suits
// identifiers such as inums and URLs whose ends are the distinguishing parts.
func TruncateMiddle(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	keep := maxLen - 3
	head := (keep + 1) / 2
	tail := keep - head
	return string(runes[:head]) + "..." + string(runes[len(runes)-tail:])
}

// JoinTruncated joins items with ", " and truncates the result, used for
// list-valued columns like grant types and scopes.
func JoinTruncated(items []string, maxLen int) string {
	return Truncate(strings.Join(items, ", "), maxLen)
}
