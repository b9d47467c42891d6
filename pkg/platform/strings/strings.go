// Package strings holds the small text helpers shared by config parsing and
// keyword search.
package strings

import (
	"strings"
)

// SplitList splits a comma separated setting such as
// "http://localhost:3000, http://127.0.0.1:3000" into its trimmed, distinct,
// non-empty entries in first-seen order.
func SplitList(raw string) []string {
	var out []string
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}

// ContainsFold reports whether substr appears in s ignoring case. It is the
// single matching rule for keyword search across store backends.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
