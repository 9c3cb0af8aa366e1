package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds flame and pack names, which end up in XML attributes
// and file names.
const maxNameLength = 256

// ValidateName validates a flame or pack name for safety.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No XML metacharacters (<, >, &, ")
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	if i := strings.IndexAny(name, `<>&"`); i >= 0 {
		return New(ErrCodeInvalidInput, "name contains invalid character: %q", name[i:i+1])
	}

	return nil
}

// ValidatePath validates an output file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// sizeRegex matches flame sizes such as "500 500".
var sizeRegex = regexp.MustCompile(`^[1-9][0-9]{0,4} [1-9][0-9]{0,4}$`)

// ValidateSize validates a flame image size of the form "<width> <height>".
func ValidateSize(size string) error {
	if !sizeRegex.MatchString(size) {
		return New(ErrCodeInvalidFormat, "invalid size %q (want \"<width> <height>\")", size)
	}
	return nil
}

// ValidateRedisURL checks that rawURL uses the redis or rediss scheme.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "redis URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "redis URL must use redis or rediss scheme")
	}

	return nil
}
