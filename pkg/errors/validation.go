package errors

import (
	"strings"
	"unicode"
)

// ValidatePath checks that a user-supplied filesystem path is usable.
// kind names the path in error messages (e.g. "output directory").
//
// The rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 4096 characters
func ValidatePath(kind, path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "%s cannot be empty", kind)
	}

	if len(path) > 4096 {
		return New(ErrCodeInvalidPath, "%s too long (max 4096 characters)", kind)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "%s contains invalid control characters", kind)
		}
	}

	return nil
}
