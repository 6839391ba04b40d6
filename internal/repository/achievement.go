package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mindtrack/mindtrack/internal/model"
)

type AchievementRepository interface {
	// CreateIfAbsent inserts the achievement unless one already exists for
	// (user, type, category). It reports whether a row was written.
	CreateIfAbsent(ctx context.Context, achievement *model.Achievement) (bool, error)
	Exists(ctx context.Context, userID string, achievementType model.AchievementType, category model.Category) (bool, error)
	ByUser(ctx context.Context, userID string) ([]*model.Achievement, error)
}

type achievementRepository struct {
	db *sqlx.DB
}

func NewAchievementRepository(db *sqlx.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) CreateIfAbsent(ctx context.Context, a *model.Achievement) (bool, error) {
	query := `INSERT INTO achievements (id, user_id, achievement_type, category, title, description, icon_emoji, earned_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (user_id, achievement_type, category) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.AchievementType,
		a.Category,
		a.Title,
		a.Description,
		a.IconEmoji,
		a.EarnedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create achievement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *achievementRepository) Exists(ctx context.Context, userID string, achievementType model.AchievementType, category model.Category) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM achievements WHERE user_id = $1 AND achievement_type = $2 AND category = $3`
	err := r.db.QueryRowContext(ctx, query, userID, achievementType, category).Scan(&count)
	return count > 0, err
}

func (r *achievementRepository) ByUser(ctx context.Context, userID string) ([]*model.Achievement, error) {
	var achievements []*model.Achievement
	query := `SELECT * FROM achievements WHERE user_id = $1 ORDER BY earned_at DESC, achievement_type ASC`

	err := r.db.SelectContext(ctx, &achievements, query, userID)
	if err != nil {
		return nil, err
	}
	return achievements, nil
}
