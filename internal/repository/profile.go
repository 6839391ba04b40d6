package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mindtrack/mindtrack/internal/model"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	ByUserID(ctx context.Context, userID string) (*model.Profile, error)
	// Upsert creates the profile or replaces every preference of the existing one.
	Upsert(ctx context.Context, profile *model.Profile) error
	UpdateConcerns(ctx context.Context, userID string, concerns model.StringList) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT * FROM profiles WHERE user_id = $1`, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	now := time.Now().UTC()
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	if profile.Concerns == nil {
		profile.Concerns = model.StringList{}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, user_id, display_name, timezone, communication_style, concerns, notify_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = excluded.display_name,
			timezone = excluded.timezone,
			communication_style = excluded.communication_style,
			concerns = excluded.concerns,
			notify_email = excluded.notify_email,
			updated_at = excluded.updated_at
	`, profile.ID, profile.UserID, profile.DisplayName, profile.Timezone, profile.CommunicationStyle,
		profile.Concerns, profile.NotifyEmail, profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return err
	}

	// The stored row keeps its original id when the user already had one.
	stored, err := r.ByUserID(ctx, profile.UserID)
	if err != nil {
		return err
	}
	*profile = *stored
	return nil
}

func (r *profileRepository) UpdateConcerns(ctx context.Context, userID string, concerns model.StringList) error {
	if concerns == nil {
		concerns = model.StringList{}
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET concerns = $1, updated_at = $2
		WHERE user_id = $3
	`, concerns, time.Now().UTC(), userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}
