package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "wtp_freedom", NormalizeName("  wtp_freedom\t"))
	assert.Equal(t, "name", NormalizeName("\ufeffname"))
	// decomposed e + combining acute composes to a single rune
	assert.Equal(t, "Montr\u00e9al", NormalizeName("Montre\u0301al"))
	assert.Empty(t, NormalizeName("   "))
}
