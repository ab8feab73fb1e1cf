package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims whitespace and a leading byte order mark and returns the NFC form,
// so names read from CSV headers, cells and configuration compare equal byte for byte.
func NormalizeName(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return norm.NFC.String(strings.TrimSpace(s))
}
