package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/ledger"
	"github.com/julianstephens/murojaah/internal/models"
)

const cellWidth = 4

// MonthTitle renders "Januari 2024" style headings.
func MonthTitle(month time.Time, l constants.Language) string {
	month = month.In(ledger.Zone)
	return fmt.Sprintf("%s %d", monthNames[lang(l)][month.Month()-1], month.Year())
}

// RenderCalendar draws a Sunday-first heat map of one month, each day
// coloured by its status. todayKey is underlined.
func RenderCalendar(month time.Time, statuses map[string]models.DayStatus, todayKey string, l constants.Language) string {
	l = lang(l)
	first := firstOfMonth(month)
	days := first.AddDate(0, 1, -1).Day()

	var header strings.Builder
	for _, name := range weekdayNames[l] {
		header.WriteString(fmt.Sprintf("%-*s", cellWidth, name))
	}

	var rows []string
	var row strings.Builder
	row.WriteString(strings.Repeat(" ", cellWidth*int(first.Weekday())))

	for d := 1; d <= days; d++ {
		date := first.AddDate(0, 0, d-1)
		key := ledger.DayKey(date)

		style := StatusStyle(statuses[key])
		if key == todayKey {
			style = style.Underline(true).Bold(true)
		}
		row.WriteString(style.Render(fmt.Sprintf("%3d", d)) + " ")

		if date.Weekday() == time.Saturday {
			rows = append(rows, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	if row.Len() > 0 {
		rows = append(rows, strings.TrimRight(row.String(), " "))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(MonthTitle(first, l)),
		mutedStyle.Render(strings.TrimRight(header.String(), " ")),
		strings.Join(rows, "\n"),
		sectionStyle.Render(Legend(l)),
	)
}

// Legend lists the status colours.
func Legend(l constants.Language) string {
	var parts []string
	for _, status := range []models.DayStatus{
		models.StatusCompleted, models.StatusMissed, models.StatusBeforeSignup, models.StatusFuture,
	} {
		parts = append(parts, StatusStyle(status).Render("■")+" "+text(l, string(status)))
	}
	return strings.Join(parts, "  ")
}

// CountStatuses tallies a month's statuses.
func CountStatuses(statuses map[string]models.DayStatus) map[models.DayStatus]int {
	counts := make(map[models.DayStatus]int)
	for _, s := range statuses {
		counts[s]++
	}
	return counts
}
