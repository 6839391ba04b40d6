package model

import (
	"fmt"
	"strings"
)

type ExerciseEntry struct {
	Logged
	Activity        string `db:"activity" json:"activity"`
	DurationMinutes int    `db:"duration_minutes" json:"duration_minutes"`
	Intensity       string `db:"intensity" json:"intensity"`
	Note            string `db:"note" json:"note"`
}

func (e *ExerciseEntry) Validate() error {
	e.Activity = strings.TrimSpace(e.Activity)
	if e.Activity == "" {
		return fmt.Errorf("%w: activity is required", ErrInvalidEntry)
	}
	if e.DurationMinutes <= 0 || e.DurationMinutes > 24*60 {
		return fmt.Errorf("%w: duration must be between 1 and 1440 minutes", ErrInvalidEntry)
	}
	return nil
}

func (e *ExerciseEntry) Tracked() (Category, bool) { return CategoryExercise, true }
