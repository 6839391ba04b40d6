package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/mindtrack/mindtrack/internal/llm"
	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

type fakeStreakRepo struct {
	mu      sync.Mutex
	records map[string]*model.StreakRecord
	days    map[string]map[string]bool
	saves   int
	err     error
}

func newFakeStreakRepo() *fakeStreakRepo {
	return &fakeStreakRepo{
		records: make(map[string]*model.StreakRecord),
		days:    make(map[string]map[string]bool),
	}
}

func streakKey(userID string, category model.Category) string {
	return userID + "/" + string(category)
}

func copyStreak(r *model.StreakRecord) *model.StreakRecord {
	c := *r
	if r.LastEntryDate != nil {
		d := *r.LastEntryDate
		c.LastEntryDate = &d
	}
	return &c
}

func (f *fakeStreakRepo) get(userID string, category model.Category) *model.StreakRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[streakKey(userID, category)]
	if !ok {
		return nil
	}
	return copyStreak(r)
}

func (f *fakeStreakRepo) GetOrCreate(_ context.Context, userID string, category model.Category) (*model.StreakRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	key := streakKey(userID, category)
	r, ok := f.records[key]
	if !ok {
		r = &model.StreakRecord{ID: key, UserID: userID, Category: category}
		f.records[key] = r
	}
	return copyStreak(r), nil
}

func (f *fakeStreakRepo) ByUserAndCategory(_ context.Context, userID string, category model.Category) (*model.StreakRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.records[streakKey(userID, category)]
	if !ok {
		return nil, repository.ErrStreakNotFound
	}
	return copyStreak(r), nil
}

func (f *fakeStreakRepo) ByUser(_ context.Context, userID string) ([]*model.StreakRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.StreakRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, copyStreak(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (f *fakeStreakRepo) Save(_ context.Context, record *model.StreakRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	key := streakKey(record.UserID, record.Category)
	stored, ok := f.records[key]
	if !ok || stored.Version != record.Version {
		return repository.ErrStreakConflict
	}
	record.Version++
	f.records[key] = copyStreak(record)
	f.saves++
	return nil
}

func (f *fakeStreakRepo) LogDay(_ context.Context, userID string, category model.Category, day string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.logDayLocked(userID, category, day)
	return nil
}

func (f *fakeStreakRepo) logDayLocked(userID string, category model.Category, day string) {
	key := streakKey(userID, category)
	if f.days[key] == nil {
		f.days[key] = make(map[string]bool)
	}
	f.days[key][day] = true
}

// logDays stores fabricated logged days as is.
func (f *fakeStreakRepo) logDays(userID string, category model.Category, days ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range days {
		f.logDayLocked(userID, category, d)
	}
}

func (f *fakeStreakRepo) LoggedDays(_ context.Context, userID string, category model.Category, from, to string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	days := []string{}
	for d := range f.days[streakKey(userID, category)] {
		if d >= from && d <= to {
			days = append(days, d)
		}
	}
	sort.Strings(days)
	return days, nil
}

type fakeAchievementRepo struct {
	mu    sync.Mutex
	items []*model.Achievement
	err   error
}

func (f *fakeAchievementRepo) CreateIfAbsent(_ context.Context, a *model.Achievement) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for _, existing := range f.items {
		if existing.UserID == a.UserID && existing.AchievementType == a.AchievementType && existing.Category == a.Category {
			return false, nil
		}
	}
	c := *a
	f.items = append(f.items, &c)
	return true, nil
}

func (f *fakeAchievementRepo) Exists(_ context.Context, userID string, t model.AchievementType, category model.Category) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.UserID == userID && existing.AchievementType == t && existing.Category == category {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAchievementRepo) ByUser(_ context.Context, userID string) ([]*model.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Achievement
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *fakeAchievementRepo) count(t model.AchievementType, category model.Category) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.items {
		if a.AchievementType == t && a.Category == category {
			n++
		}
	}
	return n
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile
	err      error
}

func newFakeProfileRepo(profiles ...*model.Profile) *fakeProfileRepo {
	f := &fakeProfileRepo{profiles: make(map[string]*model.Profile)}
	for _, p := range profiles {
		if p.ID == "" {
			p.ID = "profile-" + p.UserID
		}
		f.profiles[p.UserID] = p
	}
	return f
}

func (f *fakeProfileRepo) ByUserID(_ context.Context, userID string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	c := *p
	c.Concerns = append(model.StringList{}, p.Concerns...)
	return &c, nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.profiles[p.UserID]; ok {
		p.ID = existing.ID
	} else if p.ID == "" {
		p.ID = "profile-" + p.UserID
	}
	c := *p
	f.profiles[p.UserID] = &c
	return nil
}

func (f *fakeProfileRepo) UpdateConcerns(_ context.Context, userID string, concerns model.StringList) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.Concerns = append(model.StringList{}, concerns...)
	return nil
}

// fakeEntryRepo keeps entries in insertion order.
type fakeEntryRepo[E any] struct {
	mu      sync.Mutex
	entries []*E
	err     error
}

func identity[E any](e *E) (string, string) {
	return any(e).(model.Entry).Identity()
}

func (f *fakeEntryRepo[E]) Create(_ context.Context, entry *E) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	c := *entry
	f.entries = append(f.entries, &c)
	return nil
}

func (f *fakeEntryRepo[E]) ByID(_ context.Context, userID, id string) (*E, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.entries {
		if gotID, gotUser := identity(e); gotID == id && gotUser == userID {
			c := *e
			return &c, nil
		}
	}
	return nil, repository.ErrEntryNotFound
}

func (f *fakeEntryRepo[E]) Recent(_ context.Context, userID string, limit int) ([]*E, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*E
	for i := len(f.entries) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if _, gotUser := identity(f.entries[i]); gotUser == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeEntryRepo[E]) All(ctx context.Context, userID string) ([]*E, error) {
	recent, err := f.Recent(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return recent, nil
}

func (f *fakeEntryRepo[E]) Update(_ context.Context, entry *E) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, userID := identity(entry)
	for i, e := range f.entries {
		if gotID, gotUser := identity(e); gotID == id && gotUser == userID {
			c := *entry
			f.entries[i] = &c
			return nil
		}
	}
	return repository.ErrEntryNotFound
}

func (f *fakeEntryRepo[E]) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if gotID, gotUser := identity(e); gotID == id && gotUser == userID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrEntryNotFound
}

type fakeConversationRepo struct {
	mu    sync.Mutex
	items []*model.Conversation
	err   error
}

func (f *fakeConversationRepo) Create(_ context.Context, c *model.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cp := *c
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeConversationRepo) Recent(_ context.Context, userID string, limit int) ([]*model.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Conversation
	for i := len(f.items) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if f.items[i].UserID == userID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) All(ctx context.Context, userID string) ([]*model.Conversation, error) {
	return f.Recent(ctx, userID, 0)
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  [][]*model.Achievement
	email string
	err   error
}

func (f *fakeNotifier) SendAchievementEmail(_ context.Context, email, _ string, achievements []*model.Achievement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = email
	f.sent = append(f.sent, achievements)
	return f.err
}

type fakeResponder struct {
	reply   string
	err     error
	prompts []llm.Prompt
}

func (f *fakeResponder) Name() string { return "fake" }

func (f *fakeResponder) Respond(_ context.Context, prompt llm.Prompt) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

// fixedClock returns a clock that always reads t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
