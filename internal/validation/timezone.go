package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/mindtrack/mindtrack/internal/model"
)

// ValidateTimezone accepts an empty value (server default) or an IANA zone name.
func ValidateTimezone(tz string) error {
	if tz == "" {
		return nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("unknown timezone %q", tz)
	}
	return nil
}

// ValidateStyle accepts an empty value or one of the known communication styles.
func ValidateStyle(style string) error {
	switch style {
	case "", model.StyleSupportive, model.StyleDirect, model.StyleGentle, model.StyleMotivating:
		return nil
	}
	return errors.New("communication style must be supportive, direct, gentle or motivating")
}

// ValidateConcerns limits the number and length of recorded concerns.
func ValidateConcerns(concerns []string) error {
	if len(concerns) > 20 {
		return errors.New("too many concerns (max 20)")
	}
	for _, c := range concerns {
		if len(c) > 50 {
			return errors.New("concern is too long (max 50 characters)")
		}
	}
	return nil
}
