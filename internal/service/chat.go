package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mindtrack/mindtrack/internal/analysis"
	"github.com/mindtrack/mindtrack/internal/llm"
	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/repository"
)

const maxMessageRunes = 2000

var (
	ErrEmptyMessage    = errors.New("message is required")
	ErrMessageTooLong  = errors.New("message is too long (max 2000 characters)")
	ErrChatUnavailable = errors.New("chat is unavailable")
)

type ChatReply struct {
	ID        string   `json:"id"`
	Response  string   `json:"response"`
	Topics    []string `json:"topics"`
	Sentiment string   `json:"sentiment"`
	Source    string   `json:"source"`
}

type ChatService struct {
	builder       *ChatContextBuilder
	responder     llm.Responder
	fallback      llm.Responder
	conversations repository.ConversationRepository
	profiles      *ProfileService
	now           func() time.Time
}

func NewChatService(
	builder *ChatContextBuilder,
	responder llm.Responder,
	conversations repository.ConversationRepository,
	profiles *ProfileService,
) *ChatService {
	return &ChatService{
		builder:       builder,
		responder:     responder,
		fallback:      llm.NewScript(),
		conversations: conversations,
		profiles:      profiles,
		now:           time.Now,
	}
}

// Send answers one message and stores the turn. Crisis messages and hosted
// model failures are answered by the script.
func (s *ChatService) Send(ctx context.Context, userID, message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > maxMessageRunes {
		return nil, ErrMessageTooLong
	}

	topics := analysis.ExtractTopics(message)
	sentiment := analysis.ClassifySentiment(message)
	prompt := llm.Prompt{Message: message, Topics: topics}

	responder := s.responder
	if llm.IsCrisis(message) {
		responder = s.fallback
		slog.Warn("crisis keywords detected in chat message", "user_id", userID)
	} else {
		system, err := s.builder.BuildContext(ctx, userID)
		if err != nil {
			return nil, err
		}
		prompt.System = system
	}

	response, err := responder.Respond(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Error("chat responder failed, using script", "error", err, "responder", responder.Name(), "user_id", userID)
		responder = s.fallback
		response, err = responder.Respond(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChatUnavailable, err)
		}
	}

	conversation := &model.Conversation{
		ID:          uuid.New().String(),
		UserID:      userID,
		UserMessage: message,
		BotResponse: response,
		Topics:      topics,
		Sentiment:   sentiment,
		Source:      responder.Name(),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, err
	}

	if err := s.profiles.MergeConcerns(ctx, userID, topics); err != nil {
		slog.Error("failed to merge chat topics into concerns", "error", err, "user_id", userID)
	}

	return &ChatReply{
		ID:        conversation.ID,
		Response:  response,
		Topics:    topics,
		Sentiment: sentiment,
		Source:    conversation.Source,
	}, nil
}

func (s *ChatService) History(ctx context.Context, userID string, limit int) ([]*model.Conversation, error) {
	return s.conversations.Recent(ctx, userID, limit)
}
