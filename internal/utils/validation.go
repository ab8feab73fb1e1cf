package utils

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Compiled regular expressions for validation
var (
	// Scenario codes and row names: alphanumeric, underscore, hyphen, dot
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

const (
	MinYear = 1900
	MaxYear = 2200
)

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ParseAlternativeID validates and converts an alternative identifier from a route or form.
func ParseAlternativeID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if err := ValidateID(raw); err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("id must be an integer")
	}
	if id < 0 {
		return 0, errors.New("id must be non-negative")
	}
	return id, nil
}

// ValidateYear checks a year input is a plausible calendar year.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return errors.New("year must be between 1900 and 2200")
	}
	return nil
}

// ValidateQuery validates search query strings
func ValidateQuery(query string) error {
	// Empty queries are allowed
	if query == "" {
		return nil
	}

	if len(query) > 200 {
		return errors.New("query too long (max 200 characters)")
	}

	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidateAndSanitizeQuery validates and sanitizes a search query
func ValidateAndSanitizeQuery(query string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	return SanitizeInput(query), nil
}
