package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/logger"
	"github.com/julianstephens/murojaah/internal/prayer"
)

// RemindCmd is meant to run every minute from cron or a systemd timer.
type RemindCmd struct {
	DryRun bool `help:"Print the reminder to stdout instead of sending it."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	settings := ctx.Settings()
	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	schedule, err := prayer.FromSettings(settings)
	if err != nil {
		return fmt.Errorf("invalid prayer schedule: %w", err)
	}

	now := ctx.Clock()
	due, ok := schedule.Due(now, settings.ReminderOffsetMin)
	if !ok {
		if c.DryRun {
			fmt.Println("No prayer reminder due now.")
		}
		return nil
	}

	// Without a session there is no record to check, so the reminder goes out.
	tracker, _, err := ctx.Tracker()
	switch {
	case err == nil:
		if today, _ := tracker.Today(); today.Completed {
			if c.DryRun {
				fmt.Println("Today's murojaah is already done.")
			}
			return nil
		}
	case errors.Is(err, cli.ErrNotLoggedIn):
		logger.Debug("Reminding without a session", "prayer", due)
	default:
		return err
	}

	msg := prayer.ReminderMessage(ctx.Language())
	if c.DryRun {
		fmt.Printf("[DryRun] %s: %s\n", due, msg)
		return nil
	}

	if err := ctx.Sender().Notify(context.Background(), msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	logger.Info("Reminder sent", "prayer", due)
	return nil
}
