// Package email holds the address rules shared by the server's request
// validation and the command-line client.
package email

import (
	"regexp"
	"strings"
)

// MaxLength is the longest address the distributor record stores.
const MaxLength = 100

var pattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

// Normalize trims surrounding whitespace. Case is preserved because the local
// part is case-sensitive.
func Normalize(addr string) string {
	return strings.TrimSpace(addr)
}

// Valid reports whether addr is an acceptable distributor email. The empty
// string is not valid; callers treat absence separately.
func Valid(addr string) bool {
	if addr == "" || len(addr) > MaxLength {
		return false
	}
	return pattern.MatchString(addr)
}
