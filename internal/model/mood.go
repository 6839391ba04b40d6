package model

import (
	"fmt"
	"strings"
)

type MoodEntry struct {
	Logged
	Mood  string `db:"mood" json:"mood"`
	Score int    `db:"score" json:"score"` // 1 (worst) to 10 (best)
	Note  string `db:"note" json:"note"`
}

func (m *MoodEntry) Validate() error {
	m.Mood = strings.TrimSpace(m.Mood)
	if m.Mood == "" {
		return fmt.Errorf("%w: mood is required", ErrInvalidEntry)
	}
	if m.Score < 1 || m.Score > 10 {
		return fmt.Errorf("%w: score must be between 1 and 10", ErrInvalidEntry)
	}
	return nil
}

func (m *MoodEntry) Tracked() (Category, bool) { return CategoryMood, true }
