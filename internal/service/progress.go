package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mindtrack/mindtrack/internal/model"
)

// AchievementNotifier tells a user about newly earned achievements.
type AchievementNotifier interface {
	SendAchievementEmail(ctx context.Context, email, name string, achievements []*model.Achievement) error
}

// Progress is what logging one entry changed.
type Progress struct {
	Streak       *model.StreakResult  `json:"streak"`
	Overall      *model.StreakResult  `json:"overall"`
	Achievements []*model.Achievement `json:"achievements"`
}

type ProgressService struct {
	streaks      *StreakService
	achievements *AchievementService
	profiles     *ProfileService
	notifier     AchievementNotifier
}

func NewProgressService(
	streaks *StreakService,
	achievements *AchievementService,
	profiles *ProfileService,
	notifier AchievementNotifier,
) *ProgressService {
	return &ProgressService{
		streaks:      streaks,
		achievements: achievements,
		profiles:     profiles,
		notifier:     notifier,
	}
}

// Record counts an entry at the given moment toward category and toward the
// overall streak, then evaluates both. Days are the user's local calendar days.
func (s *ProgressService) Record(ctx context.Context, userID string, category model.Category, at time.Time) (*Progress, error) {
	loc, err := s.profiles.Location(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !at.IsZero() {
		at = at.In(loc)
	} else {
		at = s.streaks.now().In(loc)
	}

	progress := &Progress{Achievements: []*model.Achievement{}}

	progress.Streak, err = s.streaks.RecordEntry(ctx, userID, category, at)
	if err != nil {
		return nil, err
	}
	earned, err := s.achievements.Evaluate(ctx, userID, category, progress.Streak.Record)
	if err != nil {
		return nil, err
	}
	progress.Achievements = append(progress.Achievements, earned...)

	if category != model.CategoryOverall {
		progress.Overall, err = s.streaks.RecordEntry(ctx, userID, model.CategoryOverall, at)
		if err != nil {
			return nil, err
		}
		earned, err = s.achievements.Evaluate(ctx, userID, model.CategoryOverall, progress.Overall.Record)
		if err != nil {
			return nil, err
		}
		progress.Achievements = append(progress.Achievements, earned...)
	}

	s.notify(ctx, userID, progress.Achievements)

	return progress, nil
}

// notify never fails the caller. The achievements are already stored.
func (s *ProgressService) notify(ctx context.Context, userID string, achievements []*model.Achievement) {
	if s.notifier == nil || len(achievements) == 0 {
		return
	}

	profile, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		slog.Error("failed to load profile for achievement email", "error", err, "user_id", userID)
		return
	}
	if profile.NotifyEmail == "" {
		return
	}

	err = s.notifier.SendAchievementEmail(ctx, profile.NotifyEmail, profile.DisplayName, achievements)
	if err != nil {
		slog.Error("failed to send achievement email", "error", err, "user_id", userID)
	}
}
