package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/models"
)

type SettingsShowCmd struct {
	JSON bool `help:"Print settings as JSON."`
}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	settings, err := ctx.Journal.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.out())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(settings)
	}

	status, err := ctx.Journal.BackupStatus()
	if err != nil {
		return err
	}

	ctx.println("Current Settings:")
	ctx.printf("  Name:          %s\n", settings.UserName)
	ctx.printf("  Dark Mode:     %v\n", settings.DarkMode)
	ctx.printf("  Reminder:      %v\n", settings.ReminderEnabled)
	ctx.printf("  Reminder Time: %s\n", settings.ReminderTime)
	ctx.printf("  Custom Tags:   %s\n", strings.Join(settings.CustomTags, ", "))
	ctx.printf("  Custom Moods:  %d\n", len(settings.CustomMoods))
	ctx.printf("  Last Backup:   %s\n", status.LastBackup.In(ctx.Journal.Location()).Format("2006-01-02 15:04"))
	ctx.warnIfBackupStale()
	return nil
}

type SettingsSetCmd struct {
	Name         *string `help:"Name used in greetings."`
	DarkMode     *bool   `help:"Enable or disable the dark theme."`
	Reminder     *bool   `help:"Enable or disable the daily reminder."`
	ReminderTime *string `help:"Daily reminder time (HH:MM)."`
}

func (c *SettingsSetCmd) Validate() error {
	if c.ReminderTime != nil {
		if _, err := time.Parse(constants.TimeFormat, *c.ReminderTime); err != nil {
			return fmt.Errorf("invalid reminder time %q (expected HH:MM)", *c.ReminderTime)
		}
	}
	if c.Name != nil && strings.TrimSpace(*c.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	return nil
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	if c.Name == nil && c.DarkMode == nil && c.Reminder == nil && c.ReminderTime == nil {
		ctx.println("No changes specified. Use `worthy settings show` to view settings or flags to update them.")
		return nil
	}
	if err := c.Validate(); err != nil {
		return err
	}

	_, err := ctx.Journal.UpdateSettings(func(s *models.AppSettings) {
		if c.Name != nil {
			s.UserName = strings.TrimSpace(*c.Name)
		}
		if c.DarkMode != nil {
			s.DarkMode = *c.DarkMode
		}
		if c.Reminder != nil {
			s.ReminderEnabled = *c.Reminder
		}
		if c.ReminderTime != nil {
			s.ReminderTime = *c.ReminderTime
		}
	})
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.println("Settings updated successfully.")
	return nil
}
