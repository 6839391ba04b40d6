package handler

import (
	"net/http"

	"github.com/mindtrack/mindtrack/internal/ctxkeys"
	"github.com/mindtrack/mindtrack/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	profile, err := h.profileService.Profile(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "load profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var in service.ProfileInput
	if err := decodeJSON(r, w, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profileService.Update(r.Context(), userID, in)
	if err != nil {
		respondError(w, r, err, "update profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
