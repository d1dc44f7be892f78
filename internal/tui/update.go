package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/ledger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if !m.sessionValid() {
			return m.endSession()
		}
		// A tick past midnight moves the dashboard to the new day.
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		if m.state == constants.StateEditNote {
			return m.updateNote(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
		if m.state == constants.StateDashboard {
			m.state = constants.StateCalendar
		} else {
			m.state = constants.StateDashboard
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.refresh()
		return m, nil
	}

	switch m.state {
	case constants.StateDashboard:
		return m.updateDashboard(msg)
	case constants.StateCalendar:
		return m.updateCalendar(msg)
	}
	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		if !m.sessionValid() {
			return m.endSession()
		}
		if _, ok := m.tracker.ToggleToday(); !ok {
			m.flash = text(m.lang, "save_failed")
		} else {
			m.flash = ""
		}
		m.refresh()
	case key.Matches(msg, m.keys.Note):
		m.state = constants.StateEditNote
		m.noteInput.SetValue(m.summary.Today.Note)
		m.noteInput.CursorEnd()
		cmd := m.noteInput.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevMon):
		m.month = firstOfMonth(m.month).AddDate(0, -1, 0)
	case key.Matches(msg, m.keys.NextMon):
		m.month = firstOfMonth(m.month).AddDate(0, 1, 0)
	case key.Matches(msg, m.keys.ThisMon):
		m.month = m.tracker.Now()
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m Model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.noteInput.Blur()
		m.state = constants.StateDashboard
		return m, nil
	case key.Matches(msg, m.keys.Save):
		if !m.sessionValid() {
			return m.endSession()
		}
		if _, ok := m.tracker.SaveNote(m.noteInput.Value()); !ok {
			m.flash = text(m.lang, "save_failed")
		} else {
			m.flash = ""
		}
		m.noteInput.Blur()
		m.state = constants.StateDashboard
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func firstOfMonth(t time.Time) time.Time {
	t = t.In(ledger.Zone)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, ledger.Zone)
}
