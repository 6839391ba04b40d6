package model

import "time"

// StreakRecord tracks consecutive logging days for one user and category.
// Invariant: LongestStreak >= CurrentStreak >= 0.
type StreakRecord struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	Category      Category  `db:"category" json:"category"`
	CurrentStreak int       `db:"current_streak" json:"current_streak"`
	LongestStreak int       `db:"longest_streak" json:"longest_streak"`
	LastEntryDate *string   `db:"last_entry_date" json:"last_entry_date"` // YYYY-MM-DD, nil before the first entry
	TotalEntries  int       `db:"total_entries" json:"total_entries"`
	Version       int       `db:"version" json:"-"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// LastDay returns LastEntryDate or "" when nothing was logged yet.
func (s *StreakRecord) LastDay() string {
	if s.LastEntryDate == nil {
		return ""
	}
	return *s.LastEntryDate
}

type StreakResult struct {
	Streak      int           `json:"streak"`
	IsNewRecord bool          `json:"is_new_record"`
	Record      *StreakRecord `json:"record"`
}
