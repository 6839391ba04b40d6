package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mindtrack/mindtrack/internal/model"
)

var (
	ErrStreakNotFound = errors.New("streak not found")
	// ErrStreakConflict means the record changed between read and write.
	ErrStreakConflict = errors.New("streak was updated concurrently")
)

type StreakRepository interface {
	// GetOrCreate returns the record for (userID, category), inserting an
	// empty one first when none exists.
	GetOrCreate(ctx context.Context, userID string, category model.Category) (*model.StreakRecord, error)
	ByUserAndCategory(ctx context.Context, userID string, category model.Category) (*model.StreakRecord, error)
	ByUser(ctx context.Context, userID string) ([]*model.StreakRecord, error)
	// Save writes counters only if the stored version still matches record.Version,
	// then bumps record.Version.
	Save(ctx context.Context, record *model.StreakRecord) error
	// LogDay marks day (YYYY-MM-DD) as logged. Repeats are ignored.
	LogDay(ctx context.Context, userID string, category model.Category, day string) error
	// LoggedDays returns the distinct logged days in [from, to], oldest first.
	LoggedDays(ctx context.Context, userID string, category model.Category, from, to string) ([]string, error)
}

type streakRepository struct {
	db *sqlx.DB
}

func NewStreakRepository(db *sqlx.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) GetOrCreate(ctx context.Context, userID string, category model.Category) (*model.StreakRecord, error) {
	now := time.Now().UTC()
	query := `INSERT INTO streaks (id, user_id, category, current_streak, longest_streak, last_entry_date, total_entries, version, created_at, updated_at)
	          VALUES ($1, $2, $3, 0, 0, NULL, 0, 0, $4, $5)
	          ON CONFLICT (user_id, category) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), userID, category, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create streak: %w", err)
	}

	return r.ByUserAndCategory(ctx, userID, category)
}

func (r *streakRepository) ByUserAndCategory(ctx context.Context, userID string, category model.Category) (*model.StreakRecord, error) {
	record := &model.StreakRecord{}
	query := `SELECT * FROM streaks WHERE user_id = $1 AND category = $2`

	err := r.db.GetContext(ctx, record, query, userID, category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStreakNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *streakRepository) ByUser(ctx context.Context, userID string) ([]*model.StreakRecord, error) {
	var records []*model.StreakRecord
	query := `SELECT * FROM streaks WHERE user_id = $1 ORDER BY category ASC`

	err := r.db.SelectContext(ctx, &records, query, userID)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *streakRepository) Save(ctx context.Context, record *model.StreakRecord) error {
	now := time.Now().UTC()
	query := `UPDATE streaks
	          SET current_streak = $1, longest_streak = $2, last_entry_date = $3, total_entries = $4,
	              version = version + 1, updated_at = $5
	          WHERE id = $6 AND version = $7`

	result, err := r.db.ExecContext(ctx, query,
		record.CurrentStreak,
		record.LongestStreak,
		record.LastEntryDate,
		record.TotalEntries,
		now,
		record.ID,
		record.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStreakConflict
	}

	record.Version++
	record.UpdatedAt = now
	return nil
}

func (r *streakRepository) LogDay(ctx context.Context, userID string, category model.Category, day string) error {
	query := `INSERT INTO streak_days (user_id, category, day)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, category, day) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, userID, category, day)
	if err != nil {
		return fmt.Errorf("failed to log streak day: %w", err)
	}
	return nil
}

func (r *streakRepository) LoggedDays(ctx context.Context, userID string, category model.Category, from, to string) ([]string, error) {
	days := []string{}
	query := `SELECT day FROM streak_days
	          WHERE user_id = $1 AND category = $2 AND day >= $3 AND day <= $4
	          ORDER BY day ASC`

	err := r.db.SelectContext(ctx, &days, query, userID, category, from, to)
	if err != nil {
		return nil, err
	}
	return days, nil
}
