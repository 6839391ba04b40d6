package model

import (
	"fmt"
	"strings"
	"time"
)

// Medication is a prescription definition. Creating one is configuration, not
// a logged entry, so it never counts toward a streak.
type Medication struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Dosage    string    `db:"dosage" json:"dosage"`
	Frequency string    `db:"frequency" json:"frequency"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (m *Medication) Identity() (string, string) { return m.ID, m.UserID }

func (m *Medication) Stamp(id, userID string, now time.Time) {
	m.ID = id
	m.UserID = userID
	m.Active = true
	m.CreatedAt = now.UTC()
	m.UpdatedAt = now.UTC()
}

func (m *Medication) Touch(now time.Time) { m.UpdatedAt = now.UTC() }

func (m *Medication) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEntry)
	}
	return nil
}

func (m *Medication) Tracked() (Category, bool) { return "", false }

func (m *Medication) LoggedAt() time.Time { return m.CreatedAt }

// MedicationDose records that a medication was taken.
type MedicationDose struct {
	Logged
	MedicationID string `db:"medication_id" json:"medication_id"`
	Note         string `db:"note" json:"note"`
}

func (d *MedicationDose) Validate() error {
	if strings.TrimSpace(d.MedicationID) == "" {
		return fmt.Errorf("%w: medication_id is required", ErrInvalidEntry)
	}
	return nil
}

func (d *MedicationDose) Tracked() (Category, bool) { return CategoryMedication, true }
