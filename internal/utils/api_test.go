package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntParam(t *testing.T) {
	params := url.Values{"year": {" 2010 "}, "limit": {"ten"}}

	v, errs := ParseIntParam(params, "year", 2025, nil)
	assert.Equal(t, 2010, v)
	assert.Empty(t, errs)

	v, _ = ParseIntParam(params, "absent", 2025, errs)
	assert.Equal(t, 2025, v)

	v, errs = ParseIntParam(params, "limit", 50, errs)
	assert.Equal(t, 50, v)
	assert.Contains(t, errs, "limit")
}

func TestParseBoolParam(t *testing.T) {
	tests := []struct {
		raw     string
		want    bool
		wantErr bool
	}{
		{"", false, false},
		{"on", true, false},
		{"true", true, false},
		{"True", true, false},
		{"1", true, false},
		{"off", false, false},
		{"false", false, false},
		{"no", false, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, errs := ParseBoolParam(url.Values{"option1": {tt.raw}}, "option1", nil)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Contains(t, errs, "option1")
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}
