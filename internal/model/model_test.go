package model

import (
	"errors"
	"testing"
	"time"
)

func TestAddDays(t *testing.T) {
	tests := []struct {
		day  string
		n    int
		want string
	}{
		{"2025-03-03", -1, "2025-03-02"},
		{"2025-03-01", -1, "2025-02-28"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2025-01-01", -1, "2024-12-31"},
		{"2025-03-09", 1, "2025-03-10"}, // US DST starts
		{"2025-11-02", -1, "2025-11-01"}, // US DST ends
		{"2025-12-31", 1, "2026-01-01"},
	}

	for _, tt := range tests {
		got, err := AddDays(tt.day, tt.n)
		if err != nil {
			t.Fatalf("AddDays(%q, %d) error = %v", tt.day, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.day, tt.n, got, tt.want)
		}
	}

	if _, err := AddDays("03/03/2025", 1); err == nil {
		t.Error("AddDays accepted a malformed day")
	}
}

func TestDayOfUsesLocation(t *testing.T) {
	instant := time.Date(2025, 3, 4, 2, 30, 0, 0, time.UTC)

	if got := DayOf(instant); got != "2025-03-04" {
		t.Errorf("UTC day = %q", got)
	}
	if got := DayOf(instant.In(time.FixedZone("PST", -8*60*60))); got != "2025-03-03" {
		t.Errorf("PST day = %q", got)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"mood", CategoryMood, false},
		{" Sleep ", CategorySleep, false},
		{"OVERALL", CategoryOverall, false},
		{"gratitude", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidCategory) {
				t.Errorf("ParseCategory(%q) error = %v, want ErrInvalidCategory", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestStringList(t *testing.T) {
	var nilList StringList
	v, err := nilList.Value()
	if err != nil || v != "[]" {
		t.Errorf("nil Value() = %v, %v, want []", v, err)
	}

	v, err = StringList{"sleep", "work"}.Value()
	if err != nil || v != `["sleep","work"]` {
		t.Errorf("Value() = %v, %v", v, err)
	}

	tests := []struct {
		name    string
		src     any
		want    int
		wantErr bool
	}{
		{"string", `["a","b"]`, 2, false},
		{"bytes", []byte(`["a"]`), 1, false},
		{"null", nil, 0, false},
		{"empty", "", 0, false},
		{"invalid json", "not json", 0, true},
		{"wrong type", 42, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			err := l.Scan(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (l == nil || len(l) != tt.want) {
				t.Errorf("Scan = %#v, want %d items", l, tt.want)
			}
		})
	}
}

func TestEntryValidation(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr bool
	}{
		{"mood ok", &MoodEntry{Mood: "calm", Score: 5}, false},
		{"mood missing", &MoodEntry{Mood: "  ", Score: 5}, true},
		{"mood score range", &MoodEntry{Mood: "calm", Score: 11}, true},
		{"sleep default quality", &SleepEntry{Hours: 7}, false},
		{"sleep hours", &SleepEntry{Hours: 25}, true},
		{"sleep quality", &SleepEntry{Hours: 7, Quality: "meh"}, true},
		{"exercise ok", &ExerciseEntry{Activity: "swim", DurationMinutes: 40}, false},
		{"exercise duration", &ExerciseEntry{Activity: "swim"}, true},
		{"weight default unit", &WeightEntry{Weight: 70}, false},
		{"weight unit", &WeightEntry{Weight: 70, Unit: "stone"}, true},
		{"journal ok", &JournalEntry{Content: "today"}, false},
		{"journal empty", &JournalEntry{Title: "t"}, true},
		{"medication ok", &Medication{Name: "Lithium"}, false},
		{"medication name", &Medication{}, true},
		{"dose ok", &MedicationDose{MedicationID: "m1"}, false},
		{"dose medication", &MedicationDose{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidEntry) {
				t.Errorf("Validate() = %v, want ErrInvalidEntry", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestTracked(t *testing.T) {
	tests := []struct {
		entry Entry
		want  Category
		ok    bool
	}{
		{&MoodEntry{}, CategoryMood, true},
		{&SleepEntry{}, CategorySleep, true},
		{&ExerciseEntry{}, CategoryExercise, true},
		{&WeightEntry{}, CategoryWeight, true},
		{&JournalEntry{}, CategoryJournal, true},
		{&MedicationDose{}, CategoryMedication, true},
		{&Medication{}, "", false},
	}

	for _, tt := range tests {
		got, ok := tt.entry.Tracked()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%T.Tracked() = %q, %v, want %q, %v", tt.entry, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoggedStamp(t *testing.T) {
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	var l Logged
	l.Stamp("id-1", "user-1", now)
	if !l.RecordedAt.Equal(now) || l.RecordedAt.Location() != time.UTC {
		t.Errorf("RecordedAt = %v, want now in UTC", l.RecordedAt)
	}

	past := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	l2 := Logged{RecordedAt: past}
	l2.Stamp("id-2", "user-1", now)
	if !l2.RecordedAt.Equal(past) {
		t.Errorf("Stamp overwrote RecordedAt: %v", l2.RecordedAt)
	}
}

func TestAchievementTypes(t *testing.T) {
	if StreakAchievement(7) != "streak_7" || TotalAchievement(250) != "total_250" {
		t.Error("unexpected achievement type names")
	}
}
