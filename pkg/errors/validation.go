package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateClassID validates a class id taken from user input (CLI argument,
// URL path segment). It does not check that the class exists.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No whitespace or control characters
//   - Maximum length of 512 characters
func ValidateClassID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidClassID, "class id cannot be empty")
	}

	const maxIDLength = 512
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidClassID, "class id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidClassID, "class id contains invalid characters: %q", id)
		}
	}

	return nil
}

// languageTagRegex matches the shape of a BCP 47 language tag.
var languageTagRegex = regexp.MustCompile(`^[A-Za-z]{2,8}(-[A-Za-z0-9]{1,8})*$`)

// ValidateLanguage validates a label language tag such as "en" or "de-CH".
func ValidateLanguage(tag string) error {
	if tag == "" {
		return New(ErrCodeInvalidLanguage, "language cannot be empty")
	}

	if !languageTagRegex.MatchString(tag) {
		return New(ErrCodeInvalidLanguage, "invalid language tag: %q", tag)
	}

	return nil
}

// ValidatePath validates a local document path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateQuery validates a search query.
func ValidateQuery(q string) error {
	if strings.TrimSpace(q) == "" {
		return New(ErrCodeInvalidInput, "search query cannot be empty")
	}

	const maxQueryLength = 256
	if len(q) > maxQueryLength {
		return New(ErrCodeInvalidInput, "search query too long (max %d characters)", maxQueryLength)
	}

	return nil
}
