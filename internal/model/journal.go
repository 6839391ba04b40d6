package model

import (
	"fmt"
	"strings"
)

// JournalEntry content is Markdown, optionally with a YAML front matter block.
type JournalEntry struct {
	Logged
	Title   string `db:"title" json:"title"`
	Content string `db:"content" json:"content"`
}

func (j *JournalEntry) Validate() error {
	j.Title = strings.TrimSpace(j.Title)
	if strings.TrimSpace(j.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidEntry)
	}
	if len(j.Title) > 200 {
		return fmt.Errorf("%w: title is too long (max 200 characters)", ErrInvalidEntry)
	}
	return nil
}

func (j *JournalEntry) Tracked() (Category, bool) { return CategoryJournal, true }
