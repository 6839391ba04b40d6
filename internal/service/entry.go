package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/repository"
)

// maxClockSkew is how far past the server clock an entry may be dated.
const maxClockSkew = 5 * time.Minute

// EntryPtr is satisfied by the pointer type of every stored entry.
type EntryPtr[E any] interface {
	*E
	model.Entry
}

// EntryService stores one kind of entry and reports tracked ones to
// ProgressService. Edits and deletes never change streaks.
type EntryService[E any, P EntryPtr[E]] struct {
	repo     repository.EntryRepository[E]
	progress *ProgressService
	check    func(ctx context.Context, userID string, entry *E) error
	now      func() time.Time
}

func NewEntryService[E any, P EntryPtr[E]](repo repository.EntryRepository[E], progress *ProgressService) *EntryService[E, P] {
	return &EntryService[E, P]{
		repo:     repo,
		progress: progress,
		now:      time.Now,
	}
}

// WithCheck adds a validation step that needs the store, such as verifying
// that a referenced record belongs to the user.
func (s *EntryService[E, P]) WithCheck(check func(ctx context.Context, userID string, entry *E) error) *EntryService[E, P] {
	s.check = check
	return s
}

// Create stores entry for userID. For tracked entries the returned Progress
// holds the streak update and any new achievements; otherwise it is nil.
func (s *EntryService[E, P]) Create(ctx context.Context, userID string, entry *E) (*Progress, error) {
	p := P(entry)
	if err := s.validate(ctx, userID, p); err != nil {
		return nil, err
	}

	p.Stamp(uuid.New().String(), userID, s.now())
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	category, tracked := p.Tracked()
	if !tracked || s.progress == nil {
		return nil, nil
	}

	progress, err := s.progress.Record(ctx, userID, category, p.LoggedAt())
	if err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}
	return progress, nil
}

func (s *EntryService[E, P]) ByID(ctx context.Context, userID, id string) (*E, error) {
	return s.repo.ByID(ctx, userID, id)
}

func (s *EntryService[E, P]) Recent(ctx context.Context, userID string, limit int) ([]*E, error) {
	return s.repo.Recent(ctx, userID, limit)
}

func (s *EntryService[E, P]) All(ctx context.Context, userID string) ([]*E, error) {
	return s.repo.All(ctx, userID)
}

// Update loads the entry, applies the caller's changes and saves it. The id
// and owner cannot be changed.
func (s *EntryService[E, P]) Update(ctx context.Context, userID, id string, apply func(entry *E) error) (*E, error) {
	entry, err := s.repo.ByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := apply(entry); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidEntry, err)
	}

	p := P(entry)
	if gotID, gotUser := p.Identity(); gotID != id || gotUser != userID {
		return nil, fmt.Errorf("%w: id and user_id cannot be changed", model.ErrInvalidEntry)
	}
	if err := s.validate(ctx, userID, p); err != nil {
		return nil, err
	}

	p.Touch(s.now())
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *EntryService[E, P]) validate(ctx context.Context, userID string, p P) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.LoggedAt().After(s.now().Add(maxClockSkew)) {
		return fmt.Errorf("%w: recorded_at is in the future", model.ErrInvalidEntry)
	}
	if s.check != nil {
		return s.check(ctx, userID, (*E)(p))
	}
	return nil
}

func (s *EntryService[E, P]) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
