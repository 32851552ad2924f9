package journal

import (
	"fmt"
	"time"

	"github.com/julianstephens/worthy/internal/constants"
)

// ReminderStatus describes today's writing reminder.
type ReminderStatus struct {
	Enabled bool
	// At is today's reminder time in the service time zone.
	At         time.Time
	WroteToday bool
	// Due is set once At has passed on a day without an entry.
	Due bool
}

// Reminder evaluates the reminder settings against today's entries.
func (s *Service) Reminder() (ReminderStatus, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return ReminderStatus{}, err
	}

	clock, err := time.Parse(constants.TimeFormat, settings.ReminderTime)
	if err != nil {
		return ReminderStatus{}, fmt.Errorf("invalid reminder time %q: %w", settings.ReminderTime, err)
	}

	now := s.clock().In(s.loc)
	status := ReminderStatus{
		Enabled: settings.ReminderEnabled,
		At:      time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, s.loc),
	}

	today, err := s.List(Filter{Date: now.Format(constants.DateFormat), Limit: 1})
	if err != nil {
		return ReminderStatus{}, err
	}
	status.WroteToday = len(today) > 0
	status.Due = status.Enabled && !status.WroteToday && !now.Before(status.At)
	return status, nil
}
