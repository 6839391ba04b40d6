package handler

import (
	"net/http"

	"github.com/mindtrack/mindtrack/internal/ctxkeys"
	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/service"
)

type ProgressHandler struct {
	streakService      *service.StreakService
	achievementService *service.AchievementService
}

func NewProgressHandler(streakService *service.StreakService, achievementService *service.AchievementService) *ProgressHandler {
	return &ProgressHandler{
		streakService:      streakService,
		achievementService: achievementService,
	}
}

func (h *ProgressHandler) Streaks(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	streaks, err := h.streakService.Streaks(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "load streaks")
		return
	}
	if streaks == nil {
		streaks = []*model.StreakRecord{}
	}

	writeJSON(w, http.StatusOK, streaks)
}

func (h *ProgressHandler) Streak(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	category, err := model.ParseCategory(r.PathValue("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	streak, err := h.streakService.Streak(r.Context(), userID, category)
	if err != nil {
		respondError(w, r, err, "load streak")
		return
	}

	writeJSON(w, http.StatusOK, streak)
}

func (h *ProgressHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	achievements, err := h.achievementService.Achievements(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "load achievements")
		return
	}
	if achievements == nil {
		achievements = []*model.Achievement{}
	}

	writeJSON(w, http.StatusOK, achievements)
}
