package settings

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/prayer"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	NotificationsEnabled *bool   `help:"Enable or disable prayer reminders."`
	ReminderOffsetMin    *int    `help:"Minutes after a prayer starts to send the reminder."`
	Language             *string `help:"Interface language (id or en)."`
	SessionTTLHours      *int    `help:"Hours a login stays valid."`

	Subuh   *string `help:"Subuh time (HH:MM, UTC+7)."`
	Dzuhur  *string `help:"Dzuhur time (HH:MM, UTC+7)."`
	Ashar   *string `help:"Ashar time (HH:MM, UTC+7)."`
	Maghrib *string `help:"Maghrib time (HH:MM, UTC+7)."`
	Isya    *string `help:"Isya time (HH:MM, UTC+7)."`
}

var validate = validator.New()

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	if c.List {
		printSettings(settings)
		return nil
	}

	updated := false
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.ReminderOffsetMin != nil {
		if err := validate.Var(*c.ReminderOffsetMin, "min=0,max=180"); err != nil {
			return fmt.Errorf("reminder offset must be between 0 and 180 minutes")
		}
		settings.ReminderOffsetMin = *c.ReminderOffsetMin
		updated = true
	}
	if c.Language != nil {
		if err := validate.Var(*c.Language, "oneof=id en"); err != nil {
			return fmt.Errorf("unsupported language %q: use id or en", *c.Language)
		}
		settings.Language = *c.Language
		updated = true
	}
	if c.SessionTTLHours != nil {
		if err := validate.Var(*c.SessionTTLHours, "min=1,max=720"); err != nil {
			return fmt.Errorf("session TTL must be between 1 and 720 hours")
		}
		settings.SessionTTLHours = *c.SessionTTLHours
		updated = true
	}

	for _, p := range []struct {
		value *string
		field *string
	}{
		{c.Subuh, &settings.PrayerSubuh},
		{c.Dzuhur, &settings.PrayerDzuhur},
		{c.Ashar, &settings.PrayerAshar},
		{c.Maghrib, &settings.PrayerMaghrib},
		{c.Isya, &settings.PrayerIsya},
	} {
		if p.value != nil {
			*p.field = *p.value
			updated = true
		}
	}
	if _, err := prayer.FromSettings(settings); err != nil {
		return fmt.Errorf("invalid prayer schedule: %w", err)
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func printSettings(s models.Settings) {
	fmt.Println("Current Settings:")
	fmt.Printf("  Language:              %s\n", s.Language)
	fmt.Printf("  Session TTL:           %d h\n", s.SessionTTLHours)
	fmt.Println("\nReminder Settings:")
	fmt.Printf("  Notifications Enabled: %v\n", s.NotificationsEnabled)
	fmt.Printf("  Offset After Prayer:   %d min\n", s.ReminderOffsetMin)
	fmt.Println("\nPrayer Times (UTC+7):")
	fmt.Printf("  Subuh:                 %s\n", s.PrayerSubuh)
	fmt.Printf("  Dzuhur:                %s\n", s.PrayerDzuhur)
	fmt.Printf("  Ashar:                 %s\n", s.PrayerAshar)
	fmt.Printf("  Maghrib:               %s\n", s.PrayerMaghrib)
	fmt.Printf("  Isya:                  %s\n", s.PrayerIsya)
}
