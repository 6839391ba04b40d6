package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mindtrack/mindtrack/internal/markdown"
	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/repository"
)

type RenderedJournal struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	HTML  string         `json:"html"`
	Meta  map[string]any `json:"meta"`
}

// JournalService renders journal Markdown. Storage goes through the journal
// EntryService.
type JournalService struct {
	repo   repository.EntryRepository[model.JournalEntry]
	parser *markdown.Parser
}

func NewJournalService(repo repository.EntryRepository[model.JournalEntry], parser *markdown.Parser) *JournalService {
	return &JournalService{
		repo:   repo,
		parser: parser,
	}
}

func (s *JournalService) Render(ctx context.Context, userID, id string) (*RenderedJournal, error) {
	entry, err := s.repo.ByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	html, meta, err := s.parser.ParseWithFrontmatter([]byte(entry.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to render journal: %w", err)
	}

	return &RenderedJournal{
		ID:    entry.ID,
		Title: entry.Title,
		HTML:  string(html),
		Meta:  meta,
	}, nil
}

// FillTitle takes an untitled entry's title from its front matter.
func (s *JournalService) FillTitle(_ context.Context, _ string, entry *model.JournalEntry) error {
	if entry.Title != "" {
		return nil
	}
	if title, ok := s.parser.ExtractFrontmatter([]byte(entry.Content))["title"].(string); ok {
		entry.Title = strings.TrimSpace(title)
	}
	if len(entry.Title) > 200 {
		return fmt.Errorf("%w: title is too long (max 200 characters)", model.ErrInvalidEntry)
	}
	return nil
}
