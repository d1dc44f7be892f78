package records

import (
	"fmt"

	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/ledger"
	"github.com/julianstephens/murojaah/internal/logger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/motivation"
	"github.com/julianstephens/murojaah/internal/prayer"
	"github.com/julianstephens/murojaah/internal/tui"
	"github.com/julianstephens/murojaah/internal/utils"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	t, _, err := ctx.Tracker()
	if err != nil {
		return err
	}

	sum := t.Summary()
	now := t.Now()
	printToday(t.TodayKey(), sum.Today)

	fmt.Printf("Streak:      %d hari\n", sum.Streak)
	fmt.Printf("Minggu ini:  %s\n", tui.LevelStyle(sum.WeeklyRate).Render(fmt.Sprintf("%d%%", sum.WeeklyRate)))
	fmt.Println()
	fmt.Println(motivation.Daily(sum.Today.Completed, sum.Streak, now.In(ledger.Zone).Hour()))

	settings := ctx.Settings()
	schedule, err := prayer.FromSettings(settings)
	if err != nil {
		logger.Warn("Invalid prayer schedule, using defaults", "error", err)
		schedule = prayer.DefaultSchedule()
	}
	info := schedule.At(now)
	fmt.Printf("Sholat:      %s, %s dalam %s\n", info.Current, info.Next, utils.FormatCountdown(info.UntilNext, ctx.Language()))
	return nil
}

func printToday(day string, rec models.DayRecord) {
	status := tui.StatusStyle(models.StatusMissed).Render("○ Belum")
	if rec.Completed {
		status = tui.StatusStyle(models.StatusCompleted).Render("✓ Selesai")
	}
	fmt.Printf("Hari ini:    %s  %s\n", day, status)
	if rec.Note != "" {
		fmt.Printf("Catatan:     %s\n", rec.Note)
	}
}

type MarkCmd struct {
	Undo bool `help:"Mark today as not done."`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	t, _, err := ctx.Tracker()
	if err != nil {
		return err
	}

	rec, ok := t.MarkToday(!c.Undo)
	if !ok {
		return fmt.Errorf("gagal menyimpan murojaah hari ini, coba lagi")
	}
	printToday(rec.Day, rec)
	return nil
}

type NoteCmd struct {
	Text string `arg:"" help:"Note for today's murojaah (empty clears it)." optional:""`
}

func (c *NoteCmd) Run(ctx *cli.Context) error {
	t, _, err := ctx.Tracker()
	if err != nil {
		return err
	}

	rec, ok := t.SaveNote(c.Text)
	if !ok {
		return fmt.Errorf("gagal menyimpan catatan, coba lagi")
	}
	printToday(rec.Day, rec)
	return nil
}
