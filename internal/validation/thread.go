// Package validation contains input validation for user and thread payloads.
package validation

import (
	"fmt"
	"strings"
)

const minThreadTextLen = 3

// ValidateThreadText checks the body text of a post or reply.
func ValidateThreadText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("text is required")
	}
	if len([]rune(trimmed)) < minThreadTextLen {
		return fmt.Errorf("text must be at least %d characters", minThreadTextLen)
	}
	return nil
}
