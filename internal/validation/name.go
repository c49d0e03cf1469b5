package validation

import (
	"strings"
)

// ValidateTitle validates objective and key result titles
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return NewError("title", "is required")
	}

	if len(trimmed) > 200 {
		return NewError("title", "is too long (max 200 characters)")
	}

	return nil
}
