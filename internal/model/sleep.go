package model

import "fmt"

const (
	SleepQualityPoor      = "poor"
	SleepQualityFair      = "fair"
	SleepQualityGood      = "good"
	SleepQualityExcellent = "excellent"
)

type SleepEntry struct {
	Logged
	Hours   float64 `db:"hours" json:"hours"`
	Quality string  `db:"quality" json:"quality"`
	Note    string  `db:"note" json:"note"`
}

func (s *SleepEntry) Validate() error {
	if s.Hours <= 0 || s.Hours > 24 {
		return fmt.Errorf("%w: hours must be between 0 and 24", ErrInvalidEntry)
	}
	switch s.Quality {
	case SleepQualityPoor, SleepQualityFair, SleepQualityGood, SleepQualityExcellent:
	case "":
		s.Quality = SleepQualityFair
	default:
		return fmt.Errorf("%w: unknown sleep quality %q", ErrInvalidEntry, s.Quality)
	}
	return nil
}

func (s *SleepEntry) Tracked() (Category, bool) { return CategorySleep, true }
