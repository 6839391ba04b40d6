package model

import "time"

const (
	StyleSupportive = "supportive"
	StyleDirect     = "direct"
	StyleGentle     = "gentle"
	StyleMotivating = "motivating"
)

// Profile holds the preferences the chat companion and day boundaries depend on.
type Profile struct {
	ID                 string     `db:"id" json:"id"`
	UserID             string     `db:"user_id" json:"user_id"`
	DisplayName        string     `db:"display_name" json:"display_name"`
	Timezone           string     `db:"timezone" json:"timezone"` // IANA name, empty means server default
	CommunicationStyle string     `db:"communication_style" json:"communication_style"`
	Concerns           StringList `db:"concerns" json:"concerns"`
	NotifyEmail        string     `db:"notify_email" json:"notify_email"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}
