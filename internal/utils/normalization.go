package utils

import "strings"

func NormalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}

func NormalizeType(interviewType string) string {
	return strings.ToLower(strings.TrimSpace(interviewType))
}

// SplitTechStack turns the comma-joined tech-stack string from the
// request into a trimmed, lowercased list with empties dropped.
func SplitTechStack(stack string) []string {
	parts := strings.Split(stack, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
