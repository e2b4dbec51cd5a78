package validation

import (
	"fmt"
	"net/url"
	"regexp"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9_.]{3,30}$`)

// ValidateUsername validates the lowercased username format.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-30 characters and contain only lowercase letters, numbers, dots, and underscores")
	}
	return nil
}

// ValidateProfile checks the fields of a profile save.
func ValidateProfile(username, name, bio, image string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if n := len([]rune(name)); n < 3 || n > 30 {
		return fmt.Errorf("name must be 3-30 characters")
	}
	if len([]rune(bio)) > 1000 {
		return fmt.Errorf("bio must be at most 1000 characters")
	}
	if image != "" {
		if _, err := url.ParseRequestURI(image); err != nil {
			return fmt.Errorf("image must be a valid URL")
		}
	}
	return nil
}
