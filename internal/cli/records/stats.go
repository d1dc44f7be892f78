package records

import (
	"fmt"

	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/ledger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/motivation"
	"github.com/julianstephens/murojaah/internal/tui"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	t, _, err := ctx.Tracker()
	if err != nil {
		return err
	}

	sum := t.Summary()
	rate := tui.LevelStyle(sum.WeeklyRate)

	fmt.Printf("Streak:        %d hari\n", sum.Streak)
	fmt.Printf("Minggu ini:    %s\n", rate.Render(fmt.Sprintf("%d%%", sum.WeeklyRate)))
	fmt.Printf("               %s\n", rate.Render(motivation.Weekly(sum.WeeklyRate)))

	counts := tui.CountStatuses(t.MonthStatuses(t.Now()))
	fmt.Println()
	fmt.Printf("%s\n", tui.MonthTitle(t.Now(), ctx.Language()))
	fmt.Printf("  Selesai:     %d\n", counts[models.StatusCompleted])
	fmt.Printf("  Terlewat:    %d\n", counts[models.StatusMissed])
	return nil
}

type MonthCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM), defaults to the current month."`
}

func (c *MonthCmd) Run(ctx *cli.Context) error {
	t, _, err := ctx.Tracker()
	if err != nil {
		return err
	}

	month := t.Now()
	if c.Month != "" {
		if month, err = ledger.ParseMonth(c.Month); err != nil {
			return fmt.Errorf("invalid month %q: expected YYYY-MM", c.Month)
		}
	}

	fmt.Println(tui.RenderCalendar(month, t.MonthStatuses(month), t.TodayKey(), ctx.Language()))
	return nil
}

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD), defaults to today."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	t, _, err := ctx.Tracker()
	if err != nil {
		return err
	}

	date := t.Now()
	if c.Date != "" {
		if date, err = ledger.ParseDayKey(c.Date); err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", c.Date)
		}
	}
	key := ledger.DayKey(date)
	status := t.Status(date)

	fmt.Printf("%s  %s\n", key, tui.StatusStyle(status).Render(string(status)))
	if rec, ok := t.Record(key); ok {
		if rec.Note != "" {
			fmt.Printf("Catatan:  %s\n", rec.Note)
		}
		fmt.Printf("Dicatat:  %s\n", rec.Timestamp)
	}
	return nil
}
