package validation

import (
	"errors"
	"strings"
)

// ValidateName validates a profile display name. Empty is allowed.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if len(trimmed) > 100 {
		return errors.New("name is too long (max 100 characters)")
	}

	return nil
}
