package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/ledger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/session"
	"github.com/julianstephens/murojaah/internal/storage"
)

type fakeStore struct {
	records  map[string]models.DayRecord
	failPuts bool
}

func (f *fakeStore) GetDayRecord(_, day string) (models.DayRecord, error) {
	rec, ok := f.records[day]
	if !ok {
		return models.DayRecord{}, storage.ErrNotFound
	}
	return rec, nil
}

func (f *fakeStore) PutDayRecord(_ string, rec models.DayRecord) error {
	if f.failPuts {
		return errors.New("disk full")
	}
	f.records[rec.Day] = rec
	return nil
}

func (f *fakeStore) GetDayRecords(_, start, end string) (map[string]models.DayRecord, error) {
	out := map[string]models.DayRecord{}
	for day, rec := range f.records {
		if day >= start && day <= end {
			out[day] = rec
		}
	}
	return out, nil
}

// 2024-01-15 10:00 in the tracker zone.
var testNow = time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *fakeStore) {
	t.Helper()
	store := &fakeStore{records: map[string]models.DayRecord{
		"2024-01-14": {Day: "2024-01-14", Completed: true, Timestamp: "2024-01-14 20:00:00"},
	}}
	tracker := ledger.NewTracker(store, nil, "user-1",
		ledger.WithClock(func() time.Time { return testNow }),
		ledger.WithSignup("2024-01-10 08:00:00"))
	return NewModel(tracker, models.DefaultSettings(), "Fulan", nil), store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestNewModelLoadsSummary(t *testing.T) {
	m, _ := newTestModel(t)

	if m.state != constants.StateDashboard {
		t.Errorf("expected dashboard state, got %v", m.state)
	}
	if m.summary.Streak != 0 {
		t.Errorf("expected streak 0 while today is pending, got %d", m.summary.Streak)
	}
	if m.summary.WeeklyRate != 50 {
		t.Errorf("expected weekly rate 50, got %d", m.summary.WeeklyRate)
	}
	if m.statuses["2024-01-14"] != models.StatusCompleted {
		t.Errorf("expected 2024-01-14 completed, got %q", m.statuses["2024-01-14"])
	}
}

func TestToggleToday(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = update(t, m, runes("t"))
	if !store.records["2024-01-15"].Completed {
		t.Fatal("expected today to be completed")
	}
	if m.summary.Streak != 2 || m.summary.WeeklyRate != 100 {
		t.Errorf("expected streak 2 and rate 100, got %d and %d", m.summary.Streak, m.summary.WeeklyRate)
	}
	if !strings.Contains(m.View(), "Barakallahu") && !strings.Contains(m.View(), "Excellent! Murojaah") {
		t.Error("expected a completed motivation message in the view")
	}

	m, _ = update(t, m, runes("t"))
	if store.records["2024-01-15"].Completed {
		t.Error("expected second toggle to clear today")
	}
}

func TestToggleFailureShowsFlash(t *testing.T) {
	m, store := newTestModel(t)
	store.failPuts = true

	m, _ = update(t, m, runes("t"))
	if m.flash == "" {
		t.Fatal("expected a flash message")
	}
	if !strings.Contains(m.View(), text(constants.LangIndonesian, "save_failed")) {
		t.Error("expected the flash in the view")
	}
}

func TestEditNote(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = update(t, m, runes("n"))
	if m.state != constants.StateEditNote {
		t.Fatalf("expected note state, got %v", m.state)
	}

	// q is text while editing
	m, _ = update(t, m, runes("Juz 30 q"))
	if m.quitting || m.state != constants.StateEditNote {
		t.Fatal("typing must not quit")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != constants.StateDashboard {
		t.Errorf("expected dashboard after save, got %v", m.state)
	}
	rec := store.records["2024-01-15"]
	if rec.Note != "Juz 30 q" {
		t.Errorf("expected note to be saved, got %q", rec.Note)
	}
	if rec.Completed {
		t.Error("saving a note must keep completion")
	}
}

func TestEditNoteCancel(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = update(t, m, runes("n"))
	m, _ = update(t, m, runes("draft"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.state != constants.StateDashboard {
		t.Errorf("expected dashboard after cancel, got %v", m.state)
	}
	if _, ok := store.records["2024-01-15"]; ok {
		t.Error("cancel must not write")
	}
}

func TestCalendarNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateCalendar {
		t.Fatalf("expected calendar state, got %v", m.state)
	}
	if !strings.Contains(m.View(), "Januari 2024") {
		t.Error("expected the current month heading")
	}

	m, _ = update(t, m, runes("h"))
	if got := m.month.In(ledger.Zone).Format(constants.MonthFormat); got != "2023-12" {
		t.Errorf("expected 2023-12, got %s", got)
	}
	if m.statuses["2023-12-31"] != models.StatusBeforeSignup {
		t.Errorf("expected before-signup in December, got %q", m.statuses["2023-12-31"])
	}

	m, _ = update(t, m, runes("l"))
	m, _ = update(t, m, runes("l"))
	if m.statuses["2024-02-01"] != models.StatusFuture {
		t.Errorf("expected future in February, got %q", m.statuses["2024-02-01"])
	}

	m, _ = update(t, m, runes("."))
	if got := m.month.In(ledger.Zone).Format(constants.MonthFormat); got != "2024-01" {
		t.Errorf("expected 2024-01, got %s", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateDashboard {
		t.Errorf("expected dashboard, got %v", m.state)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if m.View() != "" {
		t.Error("expected empty view after quitting")
	}
}

func TestRenderCalendar(t *testing.T) {
	month := time.Date(2024, 2, 1, 0, 0, 0, 0, ledger.Zone)
	statuses := ledger.MonthStatuses(month, "2024-01-10 08:00:00", testNow, ledger.Records{})

	out := RenderCalendar(month, statuses, "", constants.LangEnglish)
	for _, want := range []string{"February 2024", "Sun", "29", "Upcoming"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in calendar:\n%s", want, out)
		}
	}
	if strings.Contains(out, " 30") {
		t.Error("February 2024 has 29 days")
	}

	counts := CountStatuses(statuses)
	if counts[models.StatusFuture] != 29 {
		t.Errorf("expected 29 future days, got %d", counts[models.StatusFuture])
	}
}

type logoutRecorder struct {
	acct    models.Account
	logouts int
}

func (d *logoutRecorder) Get(string) (models.Account, error) { return d.acct, nil }

func (d *logoutRecorder) RecordLogout(string) error {
	d.logouts++
	return nil
}

func TestSessionExpiryEndsDashboard(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{name: "tick", msg: tickMsg(testNow)},
		{name: "toggle", msg: runes("t")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{records: map[string]models.DayRecord{}}
			tracker := ledger.NewTracker(store, nil, "user-1",
				ledger.WithClock(func() time.Time { return testNow }),
				ledger.WithSignup("2024-01-10 08:00:00"))

			now := testNow
			dir := &logoutRecorder{acct: models.Account{ID: "user-1"}}
			sessions := session.NewProvider(session.NewMemoryBackend([]byte("test-secret")), dir,
				session.WithClock(func() time.Time { return now }))
			if err := sessions.Start(dir.acct, "email"); err != nil {
				t.Fatalf("Start failed: %v", err)
			}
			m := NewModel(tracker, models.DefaultSettings(), "Fulan", sessions)

			now = now.Add(23 * time.Hour)
			m, cmd := update(t, m, tickMsg(now))
			if m.quitting || m.SessionEnded() {
				t.Fatal("dashboard quit before the session expired")
			}
			if cmd == nil {
				t.Fatal("expected the next tick to be scheduled")
			}

			now = now.Add(time.Hour + time.Second)
			m, cmd = update(t, m, tt.msg)
			if !m.SessionEnded() || !m.quitting || cmd == nil {
				t.Fatal("expected the dashboard to quit once the session expired")
			}
			if m.flash != text(constants.LangIndonesian, "session_ended") {
				t.Errorf("flash = %q", m.flash)
			}
			if _, ok := store.records["2024-01-15"]; ok {
				t.Error("no record may be written after the session expired")
			}
			if sessions.Current() != nil || dir.logouts != 1 {
				t.Error("expected the expired session to be ended")
			}
		})
	}
}
