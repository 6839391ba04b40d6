package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mindtrack/mindtrack/internal/config"
	"github.com/mindtrack/mindtrack/internal/db"
	"github.com/mindtrack/mindtrack/internal/llm"
	"github.com/mindtrack/mindtrack/internal/markdown"
	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/repository"
	"github.com/mindtrack/mindtrack/internal/service"
	"github.com/mindtrack/mindtrack/internal/storage"
)

type App struct {
	Cfg                   *config.Config
	DB                    *sqlx.DB
	AuthService           *service.AuthService
	ProfileService        *service.ProfileService
	EmailService          *service.EmailService
	StreakService         *service.StreakService
	AchievementService    *service.AchievementService
	ProgressService       *service.ProgressService
	MoodService           *service.EntryService[model.MoodEntry, *model.MoodEntry]
	SleepService          *service.EntryService[model.SleepEntry, *model.SleepEntry]
	ExerciseService       *service.EntryService[model.ExerciseEntry, *model.ExerciseEntry]
	WeightService         *service.EntryService[model.WeightEntry, *model.WeightEntry]
	JournalEntryService   *service.EntryService[model.JournalEntry, *model.JournalEntry]
	MedicationService     *service.EntryService[model.Medication, *model.Medication]
	MedicationDoseService *service.EntryService[model.MedicationDose, *model.MedicationDose]
	JournalService        *service.JournalService
	ChatService           *service.ChatService
	ExportService         *service.ExportService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	a, err := NewWithDB(ctx, cfg, database)
	if err != nil {
		database.Close()
		return nil, err
	}
	return a, nil
}

// NewWithDB wires repositories and services over an open, migrated database.
func NewWithDB(ctx context.Context, cfg *config.Config, database *sqlx.DB) (*App, error) {
	// Repositories
	profileRepository := repository.NewProfileRepository(database)
	streakRepository := repository.NewStreakRepository(database)
	achievementRepository := repository.NewAchievementRepository(database)
	conversationRepository := repository.NewConversationRepository(database)
	moodRepository := repository.NewMoodRepository(database)
	sleepRepository := repository.NewSleepRepository(database)
	exerciseRepository := repository.NewExerciseRepository(database)
	weightRepository := repository.NewWeightRepository(database)
	journalRepository := repository.NewJournalRepository(database)
	medicationRepository := repository.NewMedicationRepository(database)
	medicationDoseRepository := repository.NewMedicationDoseRepository(database)

	// Storage is optional: exports are disabled without a bucket
	var exportStorage storage.Storage
	if cfg.ExportEnabled() {
		s3Storage, err := storage.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %v", err)
		}
		exportStorage = s3Storage
	}

	// Chat responder
	apiKey := cfg.AnthropicAPIKey
	if cfg.LLMProvider == llm.ProviderOpenAI {
		apiKey = cfg.OpenAIAPIKey
	}
	responder, err := llm.New(cfg.LLMProvider, cfg.LLMModel, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat responder: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	var notifier service.AchievementNotifier
	var exportEmail *service.EmailService
	if cfg.EmailNotifications {
		notifier = emailService
		exportEmail = emailService
	}

	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry)
	profileService := service.NewProfileService(profileRepository, cfg.Location())
	streakService := service.NewStreakService(streakRepository)
	achievementService := service.NewAchievementService(achievementRepository, streakRepository)
	progressService := service.NewProgressService(streakService, achievementService, profileService, notifier)

	parser := markdown.NewParser()
	journalService := service.NewJournalService(journalRepository, parser)

	moodService := service.NewEntryService[model.MoodEntry, *model.MoodEntry](moodRepository, progressService)
	sleepService := service.NewEntryService[model.SleepEntry, *model.SleepEntry](sleepRepository, progressService)
	exerciseService := service.NewEntryService[model.ExerciseEntry, *model.ExerciseEntry](exerciseRepository, progressService)
	weightService := service.NewEntryService[model.WeightEntry, *model.WeightEntry](weightRepository, progressService)
	journalEntryService := service.NewEntryService[model.JournalEntry, *model.JournalEntry](journalRepository, progressService).
		WithCheck(journalService.FillTitle)
	medicationService := service.NewEntryService[model.Medication, *model.Medication](medicationRepository, progressService)
	medicationDoseService := service.NewEntryService[model.MedicationDose, *model.MedicationDose](medicationDoseRepository, progressService).
		WithCheck(service.MedicationOwned(medicationRepository))

	contextBuilder := service.NewChatContextBuilder(
		moodRepository,
		sleepRepository,
		exerciseRepository,
		conversationRepository,
		profileRepository,
	)
	chatService := service.NewChatService(contextBuilder, responder, conversationRepository, profileService)

	exportService := service.NewExportService(service.ExportSources{
		Moods:           moodRepository,
		Sleep:           sleepRepository,
		Exercises:       exerciseRepository,
		Weights:         weightRepository,
		Journals:        journalRepository,
		Medications:     medicationRepository,
		MedicationDoses: medicationDoseRepository,
		Streaks:         streakRepository,
		Achievements:    achievementRepository,
		Conversations:   conversationRepository,
	}, profileService, exportStorage, exportEmail)

	return &App{
		Cfg:                   cfg,
		DB:                    database,
		AuthService:           authService,
		ProfileService:        profileService,
		EmailService:          emailService,
		StreakService:         streakService,
		AchievementService:    achievementService,
		ProgressService:       progressService,
		MoodService:           moodService,
		SleepService:          sleepService,
		ExerciseService:       exerciseService,
		WeightService:         weightService,
		JournalEntryService:   journalEntryService,
		MedicationService:     medicationService,
		MedicationDoseService: medicationDoseService,
		JournalService:        journalService,
		ChatService:           chatService,
		ExportService:         exportService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
