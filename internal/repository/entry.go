package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/mindtrack/mindtrack/internal/model"
)

const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 500
)

var (
	ErrEntryNotFound = errors.New("entry not found")
)

// EntryRepository is the CRUD surface shared by every entry table.
type EntryRepository[E any] interface {
	Create(ctx context.Context, entry *E) error
	ByID(ctx context.Context, userID, id string) (*E, error)
	Recent(ctx context.Context, userID string, limit int) ([]*E, error)
	All(ctx context.Context, userID string) ([]*E, error)
	Update(ctx context.Context, entry *E) error
	Delete(ctx context.Context, userID, id string) error
}

type entryRepository[E any] struct {
	db      *sqlx.DB
	table   string
	orderBy string
	columns []string // every column except id and user_id
}

func newEntryRepository[E any](db *sqlx.DB, table, orderBy string, columns ...string) EntryRepository[E] {
	return &entryRepository[E]{db: db, table: table, orderBy: orderBy, columns: columns}
}

func NewMoodRepository(db *sqlx.DB) EntryRepository[model.MoodEntry] {
	return newEntryRepository[model.MoodEntry](db, "mood_entries", "recorded_at",
		"mood", "score", "note", "recorded_at", "created_at", "updated_at")
}

func NewSleepRepository(db *sqlx.DB) EntryRepository[model.SleepEntry] {
	return newEntryRepository[model.SleepEntry](db, "sleep_entries", "recorded_at",
		"hours", "quality", "note", "recorded_at", "created_at", "updated_at")
}

func NewExerciseRepository(db *sqlx.DB) EntryRepository[model.ExerciseEntry] {
	return newEntryRepository[model.ExerciseEntry](db, "exercise_entries", "recorded_at",
		"activity", "duration_minutes", "intensity", "note", "recorded_at", "created_at", "updated_at")
}

func NewWeightRepository(db *sqlx.DB) EntryRepository[model.WeightEntry] {
	return newEntryRepository[model.WeightEntry](db, "weight_entries", "recorded_at",
		"weight", "unit", "note", "recorded_at", "created_at", "updated_at")
}

func NewJournalRepository(db *sqlx.DB) EntryRepository[model.JournalEntry] {
	return newEntryRepository[model.JournalEntry](db, "journal_entries", "recorded_at",
		"title", "content", "recorded_at", "created_at", "updated_at")
}

func NewMedicationRepository(db *sqlx.DB) EntryRepository[model.Medication] {
	return newEntryRepository[model.Medication](db, "medications", "created_at",
		"name", "dosage", "frequency", "active", "created_at", "updated_at")
}

func NewMedicationDoseRepository(db *sqlx.DB) EntryRepository[model.MedicationDose] {
	return newEntryRepository[model.MedicationDose](db, "medication_doses", "recorded_at",
		"medication_id", "note", "recorded_at", "created_at", "updated_at")
}

func (r *entryRepository[E]) Create(ctx context.Context, entry *E) error {
	columns := append([]string{"id", "user_id"}, r.columns...)
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (:%s)`,
		r.table, strings.Join(columns, ", "), strings.Join(columns, ", :"))

	_, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}
	return nil
}

func (r *entryRepository[E]) ByID(ctx context.Context, userID, id string) (*E, error) {
	entry := new(E)
	query := fmt.Sprintf(`SELECT * FROM %s WHERE id = $1 AND user_id = $2`, r.table)

	err := r.db.GetContext(ctx, entry, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *entryRepository[E]) Recent(ctx context.Context, userID string, limit int) ([]*E, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	var entries []*E
	query := fmt.Sprintf(`SELECT * FROM %s WHERE user_id = $1 ORDER BY %s DESC, created_at DESC LIMIT $2`,
		r.table, r.orderBy)

	err := r.db.SelectContext(ctx, &entries, query, userID, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository[E]) All(ctx context.Context, userID string) ([]*E, error) {
	var entries []*E
	query := fmt.Sprintf(`SELECT * FROM %s WHERE user_id = $1 ORDER BY %s ASC`, r.table, r.orderBy)

	err := r.db.SelectContext(ctx, &entries, query, userID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository[E]) Update(ctx context.Context, entry *E) error {
	var sets []string
	for _, c := range r.columns {
		if c == "created_at" {
			continue
		}
		sets = append(sets, c+" = :"+c)
	}
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = :id AND user_id = :user_id`,
		r.table, strings.Join(sets, ", "))

	result, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (r *entryRepository[E]) Delete(ctx context.Context, userID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.table)
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrEntryNotFound
	}

	return nil
}
