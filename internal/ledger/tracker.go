package ledger

import (
	"errors"
	"time"

	apperrors "github.com/julianstephens/murojaah/internal/errors"
	"github.com/julianstephens/murojaah/internal/logger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/storage"
)

// RecordStore is the per-user day record persistence the tracker needs.
type RecordStore interface {
	GetDayRecord(userID, day string) (models.DayRecord, error)
	PutDayRecord(userID string, rec models.DayRecord) error
	GetDayRecords(userID, startDay, endDay string) (map[string]models.DayRecord, error)
}

// SignupSource resolves a user's signup timestamp.
type SignupSource interface {
	GetSignupTimestamp(userID string) (string, error)
}

// Summary is everything the dashboard shows, computed from one ranged read.
type Summary struct {
	Today      models.DayRecord
	HasToday   bool
	Streak     int
	WeeklyRate int
	Signup     string
}

// Tracker binds the ledger computations to one user's stored records.
// Store failures never reach the caller: they are logged and replaced by
// an absent record, zero, or an empty map.
type Tracker struct {
	records  RecordStore
	accounts SignupSource
	userID   string
	now      func() time.Time

	signup       string
	signupLoaded bool
}

// Option configures a Tracker
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithSignup preloads the signup timestamp, skipping the directory lookup.
func WithSignup(signup string) Option {
	return func(t *Tracker) {
		t.signup = signup
		t.signupLoaded = signup != ""
	}
}

func NewTracker(records RecordStore, accounts SignupSource, userID string, opts ...Option) *Tracker {
	t := &Tracker{
		records:  records,
		accounts: accounts,
		userID:   userID,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) UserID() string { return t.userID }

// Now returns the tracker's current instant.
func (t *Tracker) Now() time.Time { return t.now() }

// TodayKey is the day key every write goes to.
func (t *Tracker) TodayKey() string { return DayKey(t.now()) }

// Signup returns the user's signup timestamp, or "" while it cannot be loaded.
// A successful lookup is cached; failures are retried on the next call.
func (t *Tracker) Signup() string {
	if t.signupLoaded || t.userID == "" || t.accounts == nil {
		return t.signup
	}
	signup, err := t.accounts.GetSignupTimestamp(t.userID)
	if err != nil {
		logger.Warn("Failed to load signup timestamp", "user", t.userID, "error", err)
		return ""
	}
	t.signup = signup
	t.signupLoaded = signup != ""
	return signup
}

// Record returns the stored record for a day key.
func (t *Tracker) Record(day string) (models.DayRecord, bool) {
	if t.userID == "" {
		return models.DayRecord{}, false
	}
	rec, err := t.records.GetDayRecord(t.userID, day)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to load day record", "user", t.userID, "day", day, "error", err)
		}
		return models.DayRecord{}, false
	}
	return rec, true
}

// Today returns today's record.
func (t *Tracker) Today() (models.DayRecord, bool) {
	return t.Record(t.TodayKey())
}

// SaveToday overwrites today's record with the given state. The returned
// bool is false when nothing was written.
func (t *Tracker) SaveToday(completed bool, note string) (models.DayRecord, bool) {
	if t.userID == "" {
		return models.DayRecord{}, false
	}
	now := t.now()
	rec := models.DayRecord{
		Day:       DayKey(now),
		Completed: completed,
		Note:      note,
		Timestamp: Timestamp(now),
		CreatedAt: now.UTC(),
	}
	if err := t.records.PutDayRecord(t.userID, rec); err != nil {
		logger.Error("Failed to save day record", "user", t.userID, "day", rec.Day, "error", err)
		return models.DayRecord{}, false
	}
	return rec, true
}

// todayForUpdate loads today's record ahead of a partial update. A missing
// record is an empty one; any other read error reports false so the caller
// does not overwrite data it never saw.
func (t *Tracker) todayForUpdate() (models.DayRecord, bool) {
	if t.userID == "" {
		return models.DayRecord{}, false
	}
	day := t.TodayKey()
	rec, err := t.records.GetDayRecord(t.userID, day)
	if errors.Is(err, storage.ErrNotFound) {
		return models.DayRecord{}, true
	}
	if err != nil {
		logger.Error("Failed to load day record, not saving", "user", t.userID, "day", day, "error", err)
		return models.DayRecord{}, false
	}
	return rec, true
}

// ToggleToday flips today's completion and keeps the existing note.
func (t *Tracker) ToggleToday() (models.DayRecord, bool) {
	current, ok := t.todayForUpdate()
	if !ok {
		return models.DayRecord{}, false
	}
	return t.SaveToday(!current.Completed, current.Note)
}

// MarkToday sets today's completion and keeps the existing note.
func (t *Tracker) MarkToday(completed bool) (models.DayRecord, bool) {
	current, ok := t.todayForUpdate()
	if !ok {
		return models.DayRecord{}, false
	}
	return t.SaveToday(completed, current.Note)
}

// SaveNote replaces today's note and keeps the existing completion.
func (t *Tracker) SaveNote(note string) (models.DayRecord, bool) {
	current, ok := t.todayForUpdate()
	if !ok {
		return models.DayRecord{}, false
	}
	return t.SaveToday(current.Completed, note)
}

// Range returns the records whose keys fall in [start, end].
func (t *Tracker) Range(start, end string) Records {
	if t.userID == "" {
		return Records{}
	}
	recs, err := t.records.GetDayRecords(t.userID, start, end)
	return Records(apperrors.Mask("get_day_records", recs, err, map[string]models.DayRecord{},
		"user", t.userID, "start", start, "end", end))
}

// Month returns the records of the calendar month containing month.
func (t *Tracker) Month(month time.Time) Records {
	first, last := MonthBounds(month)
	return t.Range(first, last)
}

// MonthStatuses classifies every day of a calendar month.
func (t *Tracker) MonthStatuses(month time.Time) map[string]models.DayStatus {
	return MonthStatuses(month, t.Signup(), t.now(), t.Month(month))
}

// Status classifies a single day.
func (t *Tracker) Status(date time.Time) models.DayStatus {
	signup := t.Signup()
	records := Records{}
	if _, ok := SignupDayKey(signup); ok {
		key := DayKey(date)
		if rec, found := t.Record(key); found {
			records[key] = rec
		}
	}
	return Classify(date, signup, t.now(), records)
}

// Streak returns the current streak.
func (t *Tracker) Streak() int {
	signup := t.Signup()
	if signup == "" {
		return 0
	}
	now := t.now()
	return Streak(t.Range(StreakWindow(now)), signup, now)
}

// WeeklyRate returns this week's completion percentage.
func (t *Tracker) WeeklyRate() int {
	signup := t.Signup()
	if signup == "" {
		return 0
	}
	now := t.now()
	return WeeklyRate(t.Range(WeekWindow(now)), signup, now)
}

// Summary computes today's record, the streak and the weekly rate from a
// single ranged read covering the streak window.
func (t *Tracker) Summary() Summary {
	now := t.now()
	signup := t.Signup()
	records := t.Range(StreakWindow(now))

	today, ok := records[DayKey(now)]
	return Summary{
		Today:      today,
		HasToday:   ok,
		Streak:     Streak(records, signup, now),
		WeeklyRate: WeeklyRate(records, signup, now),
		Signup:     signup,
	}
}
