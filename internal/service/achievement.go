package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/repository"
)

const perfectWeekDays = 7

type AchievementService struct {
	repo    repository.AchievementRepository
	streaks repository.StreakRepository
	now     func() time.Time
}

func NewAchievementService(repo repository.AchievementRepository, streaks repository.StreakRepository) *AchievementService {
	return &AchievementService{
		repo:    repo,
		streaks: streaks,
		now:     time.Now,
	}
}

// Evaluate awards every milestone record newly qualifies for. Rules are
// independent and checked in a fixed order. Achievements the user already
// holds are skipped silently, so the result only ever contains new rows.
func (s *AchievementService) Evaluate(ctx context.Context, userID string, category model.Category, record *model.StreakRecord) ([]*model.Achievement, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidCategory, category)
	}
	if record == nil {
		return nil, nil
	}

	var types []model.AchievementType
	if record.TotalEntries == 1 {
		types = append(types, model.AchievementFirstEntry)
	}
	for _, n := range model.StreakMilestones {
		if record.CurrentStreak == n {
			types = append(types, model.StreakAchievement(n))
		}
	}
	for _, n := range model.TotalMilestones {
		if record.TotalEntries == n {
			types = append(types, model.TotalAchievement(n))
		}
	}

	var earned []*model.Achievement
	for _, t := range types {
		a, err := s.award(ctx, userID, t, category)
		if err != nil {
			return nil, err
		}
		if a != nil {
			earned = append(earned, a)
		}
	}

	if category == model.CategoryOverall {
		ok, err := s.perfectWeek(ctx, userID, record)
		if err != nil {
			return nil, err
		}
		if ok {
			a, err := s.award(ctx, userID, model.AchievementPerfectWeek, model.CategoryOverall)
			if err != nil {
				return nil, err
			}
			if a != nil {
				earned = append(earned, a)
			}
		}
	}

	return earned, nil
}

func (s *AchievementService) Achievements(ctx context.Context, userID string) ([]*model.Achievement, error) {
	return s.repo.ByUser(ctx, userID)
}

// perfectWeek reports whether every core category was logged on each of the
// seven days ending at the overall record's last day. Late entries for a day
// in that window count the same as live ones.
func (s *AchievementService) perfectWeek(ctx context.Context, userID string, overall *model.StreakRecord) (bool, error) {
	end := overall.LastDay()
	if end == "" {
		return false, nil
	}
	start, err := model.AddDays(end, -(perfectWeekDays - 1))
	if err != nil {
		return false, err
	}

	held, err := s.repo.Exists(ctx, userID, model.AchievementPerfectWeek, model.CategoryOverall)
	if err != nil {
		return false, fmt.Errorf("failed to check perfect week: %w", err)
	}
	if held {
		return false, nil
	}

	for _, c := range model.PerfectWeekCategories {
		days, err := s.streaks.LoggedDays(ctx, userID, c, start, end)
		if err != nil {
			return false, fmt.Errorf("failed to load %s streak days: %w", c, err)
		}
		if len(days) < perfectWeekDays {
			return false, nil
		}
	}
	return true, nil
}

// award inserts the achievement unless it is already held. It returns nil
// when the insert was suppressed.
func (s *AchievementService) award(ctx context.Context, userID string, t model.AchievementType, category model.Category) (*model.Achievement, error) {
	title, description, emoji := describeAchievement(t, category)
	a := &model.Achievement{
		ID:              uuid.New().String(),
		UserID:          userID,
		AchievementType: t,
		Category:        category,
		Title:           title,
		Description:     description,
		IconEmoji:       emoji,
		EarnedAt:        s.now().UTC(),
	}

	created, err := s.repo.CreateIfAbsent(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to award %s: %w", t, err)
	}
	if !created {
		return nil, nil
	}
	return a, nil
}

func describeAchievement(t model.AchievementType, category model.Category) (title, description, emoji string) {
	subject := "an entry"
	if category != model.CategoryOverall {
		subject = string(category) + " entry"
		if strings.ContainsRune("aeiou", rune(subject[0])) {
			subject = "an " + subject
		} else {
			subject = "a " + subject
		}
	}

	switch {
	case t == model.AchievementFirstEntry:
		return "First Step", fmt.Sprintf("You logged %s for the first time.", subject), "🌱"
	case t == model.AchievementPerfectWeek:
		return "Perfect Week", "You logged mood, sleep, medication and exercise every day for a week.", "🌟"
	case strings.HasPrefix(string(t), "streak_"):
		n := strings.TrimPrefix(string(t), "streak_")
		return n + "-Day Streak", fmt.Sprintf("You logged %s %s days in a row.", subject, n), streakEmoji(n)
	case strings.HasPrefix(string(t), "total_"):
		n := strings.TrimPrefix(string(t), "total_")
		noun := "entries"
		if category != model.CategoryOverall {
			noun = string(category) + " entries"
		}
		return n + " Entries", fmt.Sprintf("You have logged %s %s.", n, noun), "📈"
	}
	return string(t), "", "🏅"
}

func streakEmoji(n string) string {
	switch n {
	case "3":
		return "🔥"
	case "7":
		return "⭐"
	case "14":
		return "💪"
	case "30":
		return "🏆"
	case "60":
		return "💎"
	case "100":
		return "👑"
	}
	return "🔥"
}
