package utils

import "strings"

// TruncateForLog folds s onto one line and cuts it to limit runes, marking
// the cut with an ellipsis.
func TruncateForLog(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
