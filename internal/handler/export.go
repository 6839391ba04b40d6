package handler

import (
	"net/http"

	"github.com/mindtrack/mindtrack/internal/ctxkeys"
	"github.com/mindtrack/mindtrack/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

func (h *ExportHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	result, err := h.exportService.Export(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "export data")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
