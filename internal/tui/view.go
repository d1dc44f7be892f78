package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/ledger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/motivation"
	"github.com/julianstephens/murojaah/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateCalendar:
		content = m.viewCalendar()
	case constants.StateEditNote:
		content = m.viewEditNote()
	}

	var flash string
	if m.flash != "" {
		flash = dangerStyle.Render(m.flash)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		flash,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	titles := []struct {
		state constants.SessionState
		label string
	}{
		{constants.StateDashboard, text(m.lang, "tab_dashboard")},
		{constants.StateCalendar, text(m.lang, "tab_calendar")},
	}

	var tabs []string
	for _, t := range titles {
		active := m.state == t.state || (t.state == constants.StateDashboard && m.state == constants.StateEditNote)
		if active {
			tabs = append(tabs, activeTabStyle.Render(t.label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func (m Model) viewDashboard() string {
	now := m.tracker.Now()
	sum := m.summary

	title := fmt.Sprintf("Assalamu'alaikum, %s", m.name)
	if m.name == "" {
		title = "Assalamu'alaikum"
	}

	status := StatusStyle(models.StatusMissed).Render(text(m.lang, "pending"))
	if sum.Today.Completed {
		status = StatusStyle(models.StatusCompleted).Render(text(m.lang, "done"))
	}

	note := mutedStyle.Render(text(m.lang, "no_note"))
	if sum.Today.Note != "" {
		note = sum.Today.Note
	}

	info := m.schedule.At(now)
	prayerLine := fmt.Sprintf("%s  ·  %s %s %s",
		info.Current,
		info.Next,
		text(m.lang, "in"),
		utils.FormatCountdown(info.UntilNext, m.lang))

	hour := now.In(ledger.Zone).Hour()

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		mutedStyle.Render(ledger.DayKey(now)),
		sectionStyle.Render(m.row(text(m.lang, "today"), status)),
		m.row(text(m.lang, "note"), note),
		sectionStyle.Render(m.row(text(m.lang, "streak"), fmt.Sprintf("%d %s", sum.Streak, text(m.lang, "days")))),
		m.row(text(m.lang, "week"), LevelStyle(sum.WeeklyRate).Render(fmt.Sprintf("%d%%", sum.WeeklyRate))),
		sectionStyle.Render(motivation.Daily(sum.Today.Completed, sum.Streak, hour)),
		LevelStyle(sum.WeeklyRate).Render(motivation.Weekly(sum.WeeklyRate)),
		sectionStyle.Render(m.row(text(m.lang, "prayer_now"), prayerLine)),
	)
}

func (m Model) viewCalendar() string {
	return RenderCalendar(m.month, m.statuses, m.tracker.TodayKey(), m.lang)
}

func (m Model) viewEditNote() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(text(m.lang, "note_prompt")),
		m.noteInput.View(),
	)
}
