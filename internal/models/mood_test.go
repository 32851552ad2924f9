package models

import (
	"testing"
	"time"
)

func TestMoodFromScore(t *testing.T) {
	tests := []struct {
		score    int
		expected Mood
		feeling  string
	}{
		{0, MoodSad, "低落"},
		{35, MoodSad, "低落"},
		{36, MoodCalm, "平静"},
		{50, MoodCalm, "平静"},
		{65, MoodCalm, "平静"},
		{66, MoodHappy, "开心"},
		{100, MoodHappy, "开心"},
	}

	for _, tt := range tests {
		if got := MoodFromScore(tt.score); got != tt.expected {
			t.Errorf("MoodFromScore(%d) = %q, want %q", tt.score, got, tt.expected)
		}
		if got := DefaultFeeling(tt.score); got != tt.feeling {
			t.Errorf("DefaultFeeling(%d) = %q, want %q", tt.score, got, tt.feeling)
		}
	}
}

func TestValidMoodScore(t *testing.T) {
	for _, score := range []int{0, 1, 50, 99, 100} {
		if !ValidMoodScore(score) {
			t.Errorf("expected %d to be valid", score)
		}
	}
	for _, score := range []int{-1, 101, 1000} {
		if ValidMoodScore(score) {
			t.Errorf("expected %d to be invalid", score)
		}
	}
}

func TestDraftAddTag(t *testing.T) {
	var d EntryDraft
	d.AddTag("family")
	d.AddTag("  family ")
	d.AddTag("")
	d.AddTag("nature")

	if len(d.Tags) != 2 || d.Tags[0] != "family" || d.Tags[1] != "nature" {
		t.Errorf("unexpected tags: %v", d.Tags)
	}
}

func TestDefaultSettings(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := DefaultSettings(now)

	if s.UserName != "Friend" || s.ReminderTime != "20:00" || s.DarkMode || s.ReminderEnabled {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.CustomTags == nil || s.CustomMoods == nil {
		t.Error("expected empty, non-nil collections")
	}
	if !s.LastBackup().Equal(now) {
		t.Errorf("expected last backup %v, got %v", now, s.LastBackup())
	}
}

func TestEntryDraftRoundTrip(t *testing.T) {
	e := DiaryEntry{
		ID:        "a",
		Content:   EntryContent{Event: "walk", Evidence: "sunny"},
		Tags:      []string{"nature"},
		MoodScore: 70,
		Mood:      MoodHappy,
	}
	d := e.Draft()
	d.Tags[0] = "changed"
	if e.Tags[0] != "nature" {
		t.Error("Draft must not share the tag slice with the entry")
	}
	if d.Text() != "walk sunny" {
		t.Errorf("unexpected draft text %q", d.Text())
	}
}
