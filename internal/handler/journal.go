package handler

import (
	"net/http"

	"github.com/mindtrack/mindtrack/internal/ctxkeys"
	"github.com/mindtrack/mindtrack/internal/service"
)

type JournalHandler struct {
	journalService *service.JournalService
}

func NewJournalHandler(journalService *service.JournalService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
	}
}

// HTML returns the entry rendered from Markdown along with its front matter.
func (h *JournalHandler) HTML(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	rendered, err := h.journalService.Render(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondError(w, r, err, "render journal entry")
		return
	}

	writeJSON(w, http.StatusOK, rendered)
}
