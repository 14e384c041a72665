package common

import "strings"

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// JoinNonEmpty joins the parts that are not blank, in order.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, sep)
}
