package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/ledger"
	"github.com/julianstephens/murojaah/internal/logger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/prayer"
)

// tickMsg refreshes the clock-dependent parts of the dashboard.
type tickMsg time.Time

// Session is the signed-in session the dashboard writes under. Valid ends
// the session once it is past its TTL.
type Session interface {
	Valid() bool
}

type Model struct {
	tracker  *ledger.Tracker
	session  Session
	schedule prayer.Schedule
	lang     constants.Language
	name     string

	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	noteInput textinput.Model

	summary  ledger.Summary
	month    time.Time
	records  ledger.Records
	statuses map[string]models.DayStatus

	flash        string
	quitting     bool
	sessionEnded bool
	width    int
	height   int
}

// NewModel builds the dashboard for the user the tracker is bound to. The
// dashboard quits as soon as sess stops being valid.
func NewModel(tracker *ledger.Tracker, settings models.Settings, displayName string, sess Session) Model {
	models.ApplyDefaultSettings(&settings)

	schedule, err := prayer.FromSettings(settings)
	if err != nil {
		logger.Warn("Invalid prayer schedule, using defaults", "error", err)
		schedule = prayer.DefaultSchedule()
	}

	ti := textinput.New()
	ti.CharLimit = 280
	ti.Width = 50

	m := Model{
		tracker:   tracker,
		session:   sess,
		schedule:  schedule,
		lang:      constants.Language(settings.Language),
		name:      displayName,
		state:     constants.StateDashboard,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		noteInput: ti,
		month:     tracker.Now(),
	}
	m.refresh()
	return m
}

// refresh reloads the summary and the displayed month.
func (m *Model) refresh() {
	m.summary = m.tracker.Summary()
	m.records = m.tracker.Month(m.month)
	m.statuses = ledger.MonthStatuses(m.month, m.tracker.Signup(), m.tracker.Now(), m.records)
}

// SessionEnded reports whether the dashboard quit because the session
// expired or was ended.
func (m Model) SessionEnded() bool { return m.sessionEnded }

func (m Model) sessionValid() bool {
	return m.session == nil || m.session.Valid()
}

func (m Model) endSession() (tea.Model, tea.Cmd) {
	m.sessionEnded = true
	m.quitting = true
	m.flash = text(m.lang, "session_ended")
	return m, tea.Quit
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDashboard:
		keys = append(keys, m.keys.Toggle, m.keys.Note)
	case constants.StateCalendar:
		keys = append(keys, m.keys.PrevMon, m.keys.NextMon)
	case constants.StateEditNote:
		keys = []key.Binding{m.keys.Save, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	if m.state == constants.StateEditNote {
		return [][]key.Binding{{m.keys.Save, m.keys.Cancel}}
	}
	return m.keys.FullHelp()
}

func tick() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}
