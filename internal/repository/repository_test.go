package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mindtrack/mindtrack/internal/db"
	"github.com/mindtrack/mindtrack/internal/model"
)

// setupTestDB opens a migrated SQLite database in a temp dir. Migrations use
// goose's global state, so these tests do not run in parallel.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	conn, err := db.Init("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })

	if err := db.RunMigrations(conn.DB, "sqlite"); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return conn
}

func newMood(userID, id string, recorded time.Time, mood string) *model.MoodEntry {
	return &model.MoodEntry{
		Logged: model.Logged{
			ID:         id,
			UserID:     userID,
			RecordedAt: recorded,
			CreatedAt:  recorded,
			UpdatedAt:  recorded,
		},
		Mood:  mood,
		Score: 6,
	}
}

func TestEntryRepositoryCRUD(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewMoodRepository(conn)
	ctx := context.Background()
	base := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	for i, mood := range []string{"tired", "calm", "hopeful"} {
		entry := newMood("user-1", "mood-"+mood, base.Add(time.Duration(i)*24*time.Hour), mood)
		if err := repo.Create(ctx, entry); err != nil {
			t.Fatalf("Create(%s) error = %v", mood, err)
		}
	}
	if err := repo.Create(ctx, newMood("user-2", "mood-other", base, "angry")); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ByID(ctx, "user-1", "mood-calm")
	if err != nil {
		t.Fatal(err)
	}
	if got.Mood != "calm" || got.Score != 6 || !got.RecordedAt.Equal(base.Add(24*time.Hour)) {
		t.Errorf("ByID = %+v", got)
	}

	if _, err := repo.ByID(ctx, "user-2", "mood-calm"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("ByID for another user error = %v, want ErrEntryNotFound", err)
	}

	recent, err := repo.Recent(ctx, "user-1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].Mood != "hopeful" || recent[1].Mood != "calm" {
		t.Errorf("Recent = %v, want hopeful then calm", moods(recent))
	}

	all, err := repo.All(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Mood != "tired" || all[2].Mood != "hopeful" {
		t.Errorf("All = %v, want oldest first", moods(all))
	}

	got.Mood = "content"
	got.Score = 8
	if err := repo.Update(ctx, got); err != nil {
		t.Fatal(err)
	}
	updated, err := repo.ByID(ctx, "user-1", "mood-calm")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Mood != "content" || updated.Score != 8 {
		t.Errorf("after Update = %+v", updated)
	}

	stranger := *updated
	stranger.UserID = "user-2"
	if err := repo.Update(ctx, &stranger); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Update by another user error = %v, want ErrEntryNotFound", err)
	}

	if err := repo.Delete(ctx, "user-2", "mood-calm"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Delete by another user error = %v, want ErrEntryNotFound", err)
	}
	if err := repo.Delete(ctx, "user-1", "mood-calm"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.ByID(ctx, "user-1", "mood-calm"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("ByID after Delete error = %v, want ErrEntryNotFound", err)
	}
}

func moods(entries []*model.MoodEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Mood)
	}
	return out
}

func TestMedicationDoseRepository(t *testing.T) {
	conn := setupTestDB(t)
	meds := NewMedicationRepository(conn)
	doses := NewMedicationDoseRepository(conn)
	ctx := context.Background()
	now := time.Now().UTC()

	med := &model.Medication{ID: "med-1", UserID: "user-1", Name: "Sertraline", Dosage: "50mg", Active: true, CreatedAt: now, UpdatedAt: now}
	if err := meds.Create(ctx, med); err != nil {
		t.Fatal(err)
	}

	dose := &model.MedicationDose{
		Logged:       model.Logged{ID: "dose-1", UserID: "user-1", RecordedAt: now, CreatedAt: now, UpdatedAt: now},
		MedicationID: "med-1",
	}
	if err := doses.Create(ctx, dose); err != nil {
		t.Fatal(err)
	}

	orphan := &model.MedicationDose{
		Logged:       model.Logged{ID: "dose-2", UserID: "user-1", RecordedAt: now, CreatedAt: now, UpdatedAt: now},
		MedicationID: "missing",
	}
	if err := doses.Create(ctx, orphan); err == nil {
		t.Error("dose for a missing medication was stored")
	}

	got, err := meds.ByID(ctx, "user-1", "med-1")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Active || got.Dosage != "50mg" {
		t.Errorf("medication = %+v", got)
	}
}

func TestStreakRepositoryOptimisticSave(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewStreakRepository(conn)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "user-1", model.CategoryMood)
	if err != nil {
		t.Fatal(err)
	}
	if first.CurrentStreak != 0 || first.LastEntryDate != nil || first.Version != 0 {
		t.Errorf("new record = %+v, want zero counters", first)
	}

	again, err := repo.GetOrCreate(ctx, "user-1", model.CategoryMood)
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != first.ID {
		t.Errorf("GetOrCreate created a second record: %s != %s", again.ID, first.ID)
	}

	day := "2025-03-03"
	first.CurrentStreak = 1
	first.LongestStreak = 1
	first.TotalEntries = 1
	first.LastEntryDate = &day
	if err := repo.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	if first.Version != 1 {
		t.Errorf("Version after Save = %d, want 1", first.Version)
	}

	again.TotalEntries = 5
	if err := repo.Save(ctx, again); !errors.Is(err, ErrStreakConflict) {
		t.Errorf("stale Save error = %v, want ErrStreakConflict", err)
	}

	stored, err := repo.ByUserAndCategory(ctx, "user-1", model.CategoryMood)
	if err != nil {
		t.Fatal(err)
	}
	if stored.TotalEntries != 1 || stored.LastDay() != day || stored.Version != 1 {
		t.Errorf("stored = %+v, want the first save", stored)
	}

	if _, err := repo.ByUserAndCategory(ctx, "user-1", model.CategorySleep); !errors.Is(err, ErrStreakNotFound) {
		t.Errorf("missing record error = %v, want ErrStreakNotFound", err)
	}
}

func TestStreakRepositoryRejectsInvalidCounters(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewStreakRepository(conn)
	ctx := context.Background()

	record, err := repo.GetOrCreate(ctx, "user-1", model.CategoryMood)
	if err != nil {
		t.Fatal(err)
	}
	record.CurrentStreak = 3
	record.LongestStreak = 2
	if err := repo.Save(ctx, record); err == nil {
		t.Error("Save accepted longest below current")
	}
}

func TestStreakRepositoryByUser(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewStreakRepository(conn)
	ctx := context.Background()

	for _, c := range []model.Category{model.CategorySleep, model.CategoryOverall, model.CategoryMood} {
		if _, err := repo.GetOrCreate(ctx, "user-1", c); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := repo.GetOrCreate(ctx, "user-2", model.CategoryMood); err != nil {
		t.Fatal(err)
	}

	records, err := repo.ByUser(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	want := []model.Category{model.CategoryMood, model.CategoryOverall, model.CategorySleep}
	if len(records) != len(want) {
		t.Fatalf("ByUser returned %d records, want %d", len(records), len(want))
	}
	for i, r := range records {
		if r.Category != want[i] {
			t.Errorf("records[%d] = %s, want %s", i, r.Category, want[i])
		}
	}
}

func TestStreakRepositoryLoggedDays(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewStreakRepository(conn)
	ctx := context.Background()

	logs := []struct {
		user     string
		category model.Category
		day      string
	}{
		{"user-1", model.CategoryMood, "2025-03-05"},
		{"user-1", model.CategoryMood, "2025-03-03"},
		{"user-1", model.CategoryMood, "2025-03-05"},
		{"user-1", model.CategoryMood, "2025-02-28"},
		{"user-1", model.CategorySleep, "2025-03-04"},
		{"user-2", model.CategoryMood, "2025-03-04"},
	}
	for _, l := range logs {
		if err := repo.LogDay(ctx, l.user, l.category, l.day); err != nil {
			t.Fatalf("LogDay(%s, %s, %s) error = %v", l.user, l.category, l.day, err)
		}
	}

	days, err := repo.LoggedDays(ctx, "user-1", model.CategoryMood, "2025-03-01", "2025-03-07")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2025-03-03", "2025-03-05"}
	if len(days) != len(want) {
		t.Fatalf("LoggedDays = %v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("days[%d] = %q, want %q", i, days[i], want[i])
		}
	}

	none, err := repo.LoggedDays(ctx, "user-3", model.CategoryMood, "2025-03-01", "2025-03-07")
	if err != nil || len(none) != 0 {
		t.Errorf("LoggedDays for unknown user = %v, %v, want empty", none, err)
	}
}

func TestAchievementRepositoryCreateIfAbsent(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewAchievementRepository(conn)
	ctx := context.Background()

	newAchievement := func(id string, category model.Category, earned time.Time) *model.Achievement {
		return &model.Achievement{
			ID:              id,
			UserID:          "user-1",
			AchievementType: "streak_7",
			Category:        category,
			Title:           "7-Day Streak",
			Description:     "You logged 7 days in a row.",
			IconEmoji:       "⭐",
			EarnedAt:        earned,
		}
	}
	earned := time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)

	created, err := repo.CreateIfAbsent(ctx, newAchievement("a1", model.CategoryMood, earned))
	if err != nil || !created {
		t.Fatalf("first CreateIfAbsent = %v, %v, want true, nil", created, err)
	}
	created, err = repo.CreateIfAbsent(ctx, newAchievement("a2", model.CategoryMood, earned.Add(time.Hour)))
	if err != nil || created {
		t.Fatalf("duplicate CreateIfAbsent = %v, %v, want false, nil", created, err)
	}
	created, err = repo.CreateIfAbsent(ctx, newAchievement("a3", model.CategorySleep, earned.Add(2*time.Hour)))
	if err != nil || !created {
		t.Fatalf("other category CreateIfAbsent = %v, %v, want true, nil", created, err)
	}

	exists, err := repo.Exists(ctx, "user-1", "streak_7", model.CategoryMood)
	if err != nil || !exists {
		t.Errorf("Exists = %v, %v, want true", exists, err)
	}
	exists, err = repo.Exists(ctx, "user-1", "streak_30", model.CategoryMood)
	if err != nil || exists {
		t.Errorf("Exists for unearned = %v, %v, want false", exists, err)
	}

	all, err := repo.ByUser(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != "a3" || all[1].ID != "a1" {
		t.Errorf("ByUser returned %d achievements, want a3 then a1", len(all))
	}
}

func TestProfileRepositoryUpsert(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewProfileRepository(conn)
	ctx := context.Background()

	if _, err := repo.ByUserID(ctx, "user-1"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("missing profile error = %v, want ErrProfileNotFound", err)
	}

	p := &model.Profile{UserID: "user-1", DisplayName: "Sam", Timezone: "Europe/Berlin", Concerns: model.StringList{"sleep"}}
	if err := repo.Upsert(ctx, p); err != nil {
		t.Fatal(err)
	}
	firstID := p.ID

	replacement := &model.Profile{UserID: "user-1", DisplayName: "Sam K", CommunicationStyle: model.StyleDirect}
	if err := repo.Upsert(ctx, replacement); err != nil {
		t.Fatal(err)
	}
	if replacement.ID != firstID {
		t.Errorf("Upsert changed the id: %s != %s", replacement.ID, firstID)
	}

	got, err := repo.ByUserID(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.DisplayName != "Sam K" || got.Timezone != "" || got.CommunicationStyle != model.StyleDirect || len(got.Concerns) != 0 {
		t.Errorf("profile = %+v, want every preference replaced", got)
	}

	if err := repo.UpdateConcerns(ctx, "user-1", model.StringList{"work", "stress"}); err != nil {
		t.Fatal(err)
	}
	got, err = repo.ByUserID(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Concerns) != 2 || got.Concerns[0] != "work" || got.Concerns[1] != "stress" {
		t.Errorf("Concerns = %v", got.Concerns)
	}

	if err := repo.UpdateConcerns(ctx, "user-2", model.StringList{"work"}); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("UpdateConcerns for missing profile error = %v, want ErrProfileNotFound", err)
	}
}

func TestConversationRepository(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewConversationRepository(conn)
	ctx := context.Background()
	base := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	for i, msg := range []string{"one", "two", "three"} {
		c := &model.Conversation{
			ID:          "c" + msg,
			UserID:      "user-1",
			UserMessage: msg,
			BotResponse: "reply",
			Sentiment:   model.SentimentNeutral,
			Source:      "script",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if i == 0 {
			c.Topics = model.StringList{"work"}
		}
		if err := repo.Create(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := repo.Recent(ctx, "user-1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].UserMessage != "three" || recent[1].UserMessage != "two" {
		t.Errorf("Recent returned %d conversations in the wrong order", len(recent))
	}
	if recent[0].Topics == nil || len(recent[0].Topics) != 0 {
		t.Errorf("Topics = %#v, want empty list", recent[0].Topics)
	}

	all, err := repo.All(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].UserMessage != "one" || !all[0].Topics.Contains("work") {
		t.Errorf("All = %+v", all)
	}
}
