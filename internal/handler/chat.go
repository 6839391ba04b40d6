package handler

import (
	"net/http"

	"github.com/mindtrack/mindtrack/internal/ctxkeys"
	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/service"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, w, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.chatService.Send(r.Context(), userID, req.Message)
	if err != nil {
		respondError(w, r, err, "send chat message")
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conversations, err := h.chatService.History(r.Context(), userID, limit)
	if err != nil {
		respondError(w, r, err, "load chat history")
		return
	}
	if conversations == nil {
		conversations = []*model.Conversation{}
	}

	writeJSON(w, http.StatusOK, conversations)
}
