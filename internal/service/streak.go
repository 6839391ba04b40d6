package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/repository"
)

type StreakService struct {
	repo  repository.StreakRepository
	now   func() time.Time
	locks keyedMutex
}

func NewStreakService(repo repository.StreakRepository) *StreakService {
	return &StreakService{
		repo: repo,
		now:  time.Now,
	}
}

// RecordEntry counts one entry dated at toward the (userID, category) streak.
// Calendar days are taken in at's location, so callers convert to the user's
// zone first. A zero at means now, and a moment past the clock is read as now.
//
// Each calendar day counts once. A day before the last logged day raises
// TotalEntries the first time it is seen but never moves the streak.
func (s *StreakService) RecordEntry(ctx context.Context, userID string, category model.Category, at time.Time) (*model.StreakResult, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidCategory, category)
	}
	now := s.now()
	if at.IsZero() {
		at = now
	}
	if at.After(now) {
		at = now.In(at.Location())
	}

	unlock := s.locks.Lock(userID + "/" + string(category))
	defer unlock()

	record, err := s.repo.GetOrCreate(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s streak: %w", category, err)
	}

	today := model.DayOf(at)
	yesterday, err := model.AddDays(today, -1)
	if err != nil {
		return nil, err
	}
	last := record.LastDay()

	if last == today {
		return &model.StreakResult{Streak: record.CurrentStreak, Record: record}, nil
	}

	if last != "" && today < last {
		return s.backfill(ctx, record, today)
	}

	newStreak := 1
	if last == yesterday {
		newStreak = record.CurrentStreak + 1
	}
	isNewRecord := newStreak > record.LongestStreak

	record.CurrentStreak = newStreak
	record.LongestStreak = max(record.LongestStreak, newStreak)
	record.LastEntryDate = &today
	record.TotalEntries++

	if err := s.save(ctx, record, today); err != nil {
		return nil, err
	}

	return &model.StreakResult{
		Streak:      newStreak,
		IsNewRecord: isNewRecord,
		Record:      record,
	}, nil
}

func (s *StreakService) backfill(ctx context.Context, record *model.StreakRecord, day string) (*model.StreakResult, error) {
	logged, err := s.repo.LoggedDays(ctx, record.UserID, record.Category, day, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s streak days: %w", record.Category, err)
	}
	if len(logged) == 0 {
		record.TotalEntries++
		if err := s.save(ctx, record, day); err != nil {
			return nil, err
		}
	}
	return &model.StreakResult{Streak: record.CurrentStreak, Record: record}, nil
}

func (s *StreakService) save(ctx context.Context, record *model.StreakRecord, day string) error {
	if err := s.repo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save %s streak: %w", record.Category, err)
	}
	if err := s.repo.LogDay(ctx, record.UserID, record.Category, day); err != nil {
		return fmt.Errorf("failed to log %s streak day: %w", record.Category, err)
	}
	return nil
}

func (s *StreakService) Streaks(ctx context.Context, userID string) ([]*model.StreakRecord, error) {
	return s.repo.ByUser(ctx, userID)
}

func (s *StreakService) Streak(ctx context.Context, userID string, category model.Category) (*model.StreakRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidCategory, category)
	}
	return s.repo.ByUserAndCategory(ctx, userID, category)
}
