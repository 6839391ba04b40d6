package model

import (
	"errors"
	"time"
)

var ErrInvalidEntry = errors.New("invalid entry")

// Entry is implemented by the pointer type of every user-owned record kept in
// the entry store.
type Entry interface {
	// Identity returns the record id and its owner.
	Identity() (id, userID string)
	// Stamp assigns identity and timestamps to a new record.
	Stamp(id, userID string, now time.Time)
	// Touch refreshes the update timestamp.
	Touch(now time.Time)
	// Validate checks user-supplied fields.
	Validate() error
	// Tracked reports the category a new record counts toward, if any.
	Tracked() (Category, bool)
	// LoggedAt is the moment the record describes.
	LoggedAt() time.Time
}

// Logged holds the columns shared by every dated entry.
type Logged struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

func (l *Logged) Identity() (string, string) {
	return l.ID, l.UserID
}

// Stamp defaults RecordedAt to now. The stored value is always UTC; calendar
// days are derived later in the user's own zone.
func (l *Logged) Stamp(id, userID string, now time.Time) {
	l.ID = id
	l.UserID = userID
	if l.RecordedAt.IsZero() {
		l.RecordedAt = now
	}
	l.RecordedAt = l.RecordedAt.UTC()
	l.CreatedAt = now.UTC()
	l.UpdatedAt = now.UTC()
}

func (l *Logged) Touch(now time.Time) {
	l.RecordedAt = l.RecordedAt.UTC()
	l.UpdatedAt = now.UTC()
}

func (l *Logged) LoggedAt() time.Time {
	return l.RecordedAt
}
