package journal

import (
	"strings"
	"time"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/models"
)

// Filter narrows a listing. Zero fields match everything.
type Filter struct {
	// Search matches event, evidence and tags, case-insensitively.
	Search string
	// Date is a YYYY-MM-DD calendar day in the service time zone.
	Date string
	Tag  string
	Mood models.Mood
	// Limit caps the result size when positive.
	Limit int
}

// IsZero reports whether the filter matches every entry.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether entry passes the filter.
func (f Filter) Match(entry models.DiaryEntry, loc *time.Location) bool {
	if f.Date != "" && entry.Time().In(loc).Format(constants.DateFormat) != f.Date {
		return false
	}
	if f.Tag != "" && !entry.HasTag(f.Tag) {
		return false
	}
	if f.Mood != "" && entry.Mood != f.Mood {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return matchesSearch(entry, term)
	}
	return true
}

func matchesSearch(entry models.DiaryEntry, term string) bool {
	if strings.Contains(strings.ToLower(entry.Content.Event), term) ||
		strings.Contains(strings.ToLower(entry.Content.Evidence), term) {
		return true
	}
	for _, tag := range entry.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Apply returns the matching entries in their original order.
func (f Filter) Apply(entries []models.DiaryEntry, loc *time.Location) []models.DiaryEntry {
	out := make([]models.DiaryEntry, 0, len(entries))
	for _, entry := range entries {
		if !f.Match(entry, loc) {
			continue
		}
		out = append(out, entry)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}
