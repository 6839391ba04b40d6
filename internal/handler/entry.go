package handler

import (
	"net/http"

	"github.com/mindtrack/mindtrack/internal/ctxkeys"
	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/service"
)

// EntryResponse is returned when an entry is created. Streak fields are set
// only for entries that count toward a category.
type EntryResponse struct {
	Entry        any                  `json:"entry"`
	Streak       *model.StreakResult  `json:"streak,omitempty"`
	Overall      *model.StreakResult  `json:"overall,omitempty"`
	Achievements []*model.Achievement `json:"achievements,omitempty"`
}

type EntryHandler[E any, P service.EntryPtr[E]] struct {
	entryService *service.EntryService[E, P]
	kind         string
}

func NewEntryHandler[E any, P service.EntryPtr[E]](entryService *service.EntryService[E, P], kind string) *EntryHandler[E, P] {
	return &EntryHandler[E, P]{
		entryService: entryService,
		kind:         kind,
	}
}

func (h *EntryHandler[E, P]) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.entryService.Recent(r.Context(), userID, limit)
	if err != nil {
		respondError(w, r, err, "list "+h.kind+" entries")
		return
	}
	if entries == nil {
		entries = []*E{}
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *EntryHandler[E, P]) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	entry := new(E)
	if err := decodeJSON(r, w, entry); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	progress, err := h.entryService.Create(r.Context(), userID, entry)
	if err != nil {
		respondError(w, r, err, "create "+h.kind+" entry")
		return
	}

	resp := EntryResponse{Entry: entry}
	if progress != nil {
		resp.Streak = progress.Streak
		resp.Overall = progress.Overall
		resp.Achievements = progress.Achievements
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *EntryHandler[E, P]) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	entry, err := h.entryService.ByID(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondError(w, r, err, "load "+h.kind+" entry")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *EntryHandler[E, P]) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var decodeErr error
	entry, err := h.entryService.Update(r.Context(), userID, r.PathValue("id"), func(entry *E) error {
		decodeErr = decodeJSON(r, w, entry)
		return decodeErr
	})
	if decodeErr != nil {
		writeError(w, http.StatusBadRequest, decodeErr.Error())
		return
	}
	if err != nil {
		respondError(w, r, err, "update "+h.kind+" entry")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *EntryHandler[E, P]) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.entryService.Delete(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondError(w, r, err, "delete "+h.kind+" entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
