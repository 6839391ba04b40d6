package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/repository"
	"github.com/mindtrack/mindtrack/internal/storage"
)

var ErrExportDisabled = errors.New("data export is not configured")

// ExportSources are the stores an archive is read from.
type ExportSources struct {
	Moods           repository.EntryRepository[model.MoodEntry]
	Sleep           repository.EntryRepository[model.SleepEntry]
	Exercises       repository.EntryRepository[model.ExerciseEntry]
	Weights         repository.EntryRepository[model.WeightEntry]
	Journals        repository.EntryRepository[model.JournalEntry]
	Medications     repository.EntryRepository[model.Medication]
	MedicationDoses repository.EntryRepository[model.MedicationDose]
	Streaks         repository.StreakRepository
	Achievements    repository.AchievementRepository
	Conversations   repository.ConversationRepository
}

// Archive is the JSON document a user downloads.
type Archive struct {
	ExportedAt      time.Time               `json:"exported_at"`
	Profile         *model.Profile          `json:"profile"`
	Moods           []*model.MoodEntry      `json:"moods"`
	Sleep           []*model.SleepEntry     `json:"sleep"`
	Exercises       []*model.ExerciseEntry  `json:"exercises"`
	Weights         []*model.WeightEntry    `json:"weights"`
	Journals        []*model.JournalEntry   `json:"journals"`
	Medications     []*model.Medication     `json:"medications"`
	MedicationDoses []*model.MedicationDose `json:"medication_doses"`
	Streaks         []*model.StreakRecord   `json:"streaks"`
	Achievements    []*model.Achievement    `json:"achievements"`
	Conversations   []*model.Conversation   `json:"conversations"`
}

type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type ExportService struct {
	sources  ExportSources
	profiles *ProfileService
	storage  storage.Storage
	email    *EmailService
	now      func() time.Time
}

// NewExportService accepts a nil storage; Export then returns ErrExportDisabled.
func NewExportService(sources ExportSources, profiles *ProfileService, store storage.Storage, email *EmailService) *ExportService {
	return &ExportService{
		sources:  sources,
		profiles: profiles,
		storage:  store,
		email:    email,
		now:      time.Now,
	}
}

func (s *ExportService) Enabled() bool {
	return s.storage != nil
}

// Export uploads every record of userID as one JSON document and returns an
// expiring download link.
func (s *ExportService) Export(ctx context.Context, userID string) (*ExportResult, error) {
	if s.storage == nil {
		return nil, ErrExportDisabled
	}

	archive, err := s.Collect(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", userID, archive.ExportedAt.Format("20060102T150405Z"))
	if err := s.storage.Save(ctx, key, bytes.NewReader(body), "application/json"); err != nil {
		return nil, err
	}

	url, err := s.storage.PresignedURL(ctx, key)
	if err != nil {
		return nil, err
	}

	slog.Info("data export created", "user_id", userID, "key", key, "bytes", len(body))

	if s.email != nil && archive.Profile.NotifyEmail != "" {
		err := s.email.SendExportReadyEmail(ctx, archive.Profile.NotifyEmail, archive.Profile.DisplayName, url)
		if err != nil {
			slog.Error("failed to send export email", "error", err, "user_id", userID)
		}
	}

	return &ExportResult{Key: key, URL: url, CreatedAt: archive.ExportedAt}, nil
}

// Collect reads every record of userID, oldest first.
func (s *ExportService) Collect(ctx context.Context, userID string) (*Archive, error) {
	archive := &Archive{ExportedAt: s.now().UTC()}
	var err error

	if archive.Profile, err = s.profiles.Profile(ctx, userID); err != nil {
		return nil, fmt.Errorf("export profile: %w", err)
	}
	if archive.Moods, err = s.sources.Moods.All(ctx, userID); err != nil {
		return nil, fmt.Errorf("export moods: %w", err)
	}
	if archive.Sleep, err = s.sources.Sleep.All(ctx, userID); err != nil {
		return nil, fmt.Errorf("export sleep: %w", err)
	}
	if archive.Exercises, err = s.sources.Exercises.All(ctx, userID); err != nil {
		return nil, fmt.Errorf("export exercises: %w", err)
	}
	if archive.Weights, err = s.sources.Weights.All(ctx, userID); err != nil {
		return nil, fmt.Errorf("export weights: %w", err)
	}
	if archive.Journals, err = s.sources.Journals.All(ctx, userID); err != nil {
		return nil, fmt.Errorf("export journals: %w", err)
	}
	if archive.Medications, err = s.sources.Medications.All(ctx, userID); err != nil {
		return nil, fmt.Errorf("export medications: %w", err)
	}
	if archive.MedicationDoses, err = s.sources.MedicationDoses.All(ctx, userID); err != nil {
		return nil, fmt.Errorf("export medication doses: %w", err)
	}
	if archive.Streaks, err = s.sources.Streaks.ByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("export streaks: %w", err)
	}
	if archive.Achievements, err = s.sources.Achievements.ByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("export achievements: %w", err)
	}
	if archive.Conversations, err = s.sources.Conversations.All(ctx, userID); err != nil {
		return nil, fmt.Errorf("export conversations: %w", err)
	}

	return archive, nil
}
