package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/repository"
)

const (
	personaPreamble = "You are MindTrack, a warm and supportive mental health companion. " +
		"You are not a therapist and you never diagnose."
	closingInstruction = "Respond with empathy in a few sentences, reference the user's own data only when it helps, " +
		"and encourage professional support if they mention being in danger."

	recentConversationCount = 5
	topicExcerptCount       = 3
	topicExcerptRunes       = 100
)

// ChatContextBuilder renders a user's recent records into the steering
// prefix for the response generator. It is rebuilt for every message.
type ChatContextBuilder struct {
	moods         repository.EntryRepository[model.MoodEntry]
	sleep         repository.EntryRepository[model.SleepEntry]
	exercises     repository.EntryRepository[model.ExerciseEntry]
	conversations repository.ConversationRepository
	profiles      repository.ProfileRepository
}

func NewChatContextBuilder(
	moods repository.EntryRepository[model.MoodEntry],
	sleep repository.EntryRepository[model.SleepEntry],
	exercises repository.EntryRepository[model.ExerciseEntry],
	conversations repository.ConversationRepository,
	profiles repository.ProfileRepository,
) *ChatContextBuilder {
	return &ChatContextBuilder{
		moods:         moods,
		sleep:         sleep,
		exercises:     exercises,
		conversations: conversations,
		profiles:      profiles,
	}
}

// BuildContext appends each clause only when its data exists. A source that
// cannot be read drops its clause and is logged; only a cancelled ctx fails.
func (b *ChatContextBuilder) BuildContext(ctx context.Context, userID string) (string, error) {
	clauses := []string{personaPreamble}

	if mood := latest(ctx, b.moods, userID, "mood"); mood != nil {
		clauses = append(clauses, fmt.Sprintf("Recent mood was %s.", mood.Mood))
	}

	exercise := "no exercise"
	if latest(ctx, b.exercises, userID, "exercise") != nil {
		exercise = "exercised"
	}
	sleep := "no sleep data"
	if s := latest(ctx, b.sleep, userID, "sleep"); s != nil {
		sleep = fmt.Sprintf("slept %sh (%s)", strconv.FormatFloat(s.Hours, 'f', -1, 64), s.Quality)
	}
	clauses = append(clauses, fmt.Sprintf("Recent activities: %s, %s.", exercise, sleep))

	if excerpts := b.recentExcerpts(ctx, userID); len(excerpts) > 0 {
		clauses = append(clauses, fmt.Sprintf("Recent conversation topics: %s.", strings.Join(excerpts, "; ")))
	}

	profile, err := b.profiles.ByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		slog.Warn("chat context: profile unavailable", "error", err, "user_id", userID)
	}
	if profile != nil {
		if profile.CommunicationStyle != "" {
			clauses = append(clauses, fmt.Sprintf("User prefers %s communication style.", profile.CommunicationStyle))
		}
		if len(profile.Concerns) > 0 {
			clauses = append(clauses, fmt.Sprintf("User has mentioned concerns about: %s.", strings.Join(profile.Concerns, ", ")))
		}
	}

	clauses = append(clauses, closingInstruction)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.Join(clauses, " "), nil
}

func (b *ChatContextBuilder) recentExcerpts(ctx context.Context, userID string) []string {
	conversations, err := b.conversations.Recent(ctx, userID, recentConversationCount)
	if err != nil {
		slog.Warn("chat context: conversations unavailable", "error", err, "user_id", userID)
		return nil
	}

	var excerpts []string
	for _, c := range conversations {
		if len(excerpts) == topicExcerptCount {
			break
		}
		msg := strings.Join(strings.Fields(c.UserMessage), " ")
		if msg == "" {
			continue
		}
		excerpts = append(excerpts, truncateRunes(msg, topicExcerptRunes))
	}
	return excerpts
}

func latest[E any](ctx context.Context, repo repository.EntryRepository[E], userID, kind string) *E {
	entries, err := repo.Recent(ctx, userID, 1)
	if err != nil {
		slog.Warn("chat context: entries unavailable", "kind", kind, "error", err, "user_id", userID)
		return nil
	}
	if len(entries) == 0 {
		return nil
	}
	return entries[0]
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
