package routes

import (
	"net/http"
	"time"

	"github.com/mindtrack/mindtrack/internal/app"
	"github.com/mindtrack/mindtrack/internal/handler"
	"github.com/mindtrack/mindtrack/internal/middleware"
)

// entryRoutes is the CRUD surface shared by every entry type.
type entryRoutes interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	moods := handler.NewEntryHandler(app.MoodService, "mood")
	sleep := handler.NewEntryHandler(app.SleepService, "sleep")
	exercises := handler.NewEntryHandler(app.ExerciseService, "exercise")
	weights := handler.NewEntryHandler(app.WeightService, "weight")
	journals := handler.NewEntryHandler(app.JournalEntryService, "journal")
	medications := handler.NewEntryHandler(app.MedicationService, "medication")
	doses := handler.NewEntryHandler(app.MedicationDoseService, "medication dose")
	journal := handler.NewJournalHandler(app.JournalService)
	progress := handler.NewProgressHandler(app.StreakService, app.AchievementService)
	profile := handler.NewProfileHandler(app.ProfileService)
	chat := handler.NewChatHandler(app.ChatService)
	export := handler.NewExportHandler(app.ExportService)

	requireAuth := middleware.RequireAuth(app.AuthService)
	chatLimit := middleware.RateLimitUser(app.Cfg.ChatRateLimit, app.Cfg.ChatRateWindow, app.Cfg.TrustProxy)
	exportLimit := middleware.RateLimitUser(3, time.Hour, app.Cfg.TrustProxy)

	protected := func(h http.HandlerFunc, extra ...func(http.Handler) http.Handler) http.Handler {
		return middleware.Chain(h, append([]func(http.Handler) http.Handler{requireAuth}, extra...)...)
	}

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Entries
	register := func(path string, h entryRoutes) {
		mux.Handle("GET "+path, protected(h.List))
		mux.Handle("POST "+path, protected(h.Create))
		mux.Handle("GET "+path+"/{id}", protected(h.Get))
		mux.Handle("PUT "+path+"/{id}", protected(h.Update))
		mux.Handle("DELETE "+path+"/{id}", protected(h.Delete))
	}
	register("/api/moods", moods)
	register("/api/sleep", sleep)
	register("/api/exercises", exercises)
	register("/api/weights", weights)
	register("/api/journals", journals)
	register("/api/medications", medications)
	register("/api/medication-doses", doses)

	mux.Handle("GET /api/journals/{id}/html", protected(journal.HTML))

	// Progress
	mux.Handle("GET /api/streaks", protected(progress.Streaks))
	mux.Handle("GET /api/streaks/{category}", protected(progress.Streak))
	mux.Handle("GET /api/achievements", protected(progress.Achievements))

	// Profile
	mux.Handle("GET /api/profile", protected(profile.Get))
	mux.Handle("PUT /api/profile", protected(profile.Update))

	// Chat (rate limited per user)
	mux.Handle("POST /api/chat", protected(chat.Send, chatLimit))
	mux.Handle("GET /api/chat/history", protected(chat.History))

	// Export
	mux.Handle("POST /api/export", protected(export.Create, exportLimit))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.RequestLogging,
	)

	return handler
}
