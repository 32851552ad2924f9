package models

import (
	"strings"
	"time"
)

// EntryContent holds the user-authored text of an entry.
type EntryContent struct {
	Event    string `json:"event"`    // what happened
	Feeling  string `json:"feeling"`  // mood description
	Evidence string `json:"evidence"` // reflection, or pain on difficult days
}

// DiaryEntry is one journaled record.
type DiaryEntry struct {
	ID         string       `json:"id"`
	Timestamp  int64        `json:"timestamp"` // Unix milliseconds
	Date       string       `json:"date"`      // YYYY-MM-DD format
	Title      string       `json:"title"`
	Content    EntryContent `json:"content"`
	Image      string       `json:"image,omitempty"`
	Tags       []string     `json:"tags"`
	Mood       Mood         `json:"mood"`
	MoodScore  int          `json:"moodScore"`
	AIResponse string       `json:"aiResponse,omitempty"`
	Favorite   bool         `json:"favorite,omitempty"`
}

// Time returns the creation instant of the entry.
func (e DiaryEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// HasImage reports whether a photo is attached.
func (e DiaryEntry) HasImage() bool {
	return e.Image != ""
}

// HasTag reports whether the entry carries tag.
func (e DiaryEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// EntryDraft is an entry as composed by the user, before it is given an
// identity, a timestamp and an affirmation.
type EntryDraft struct {
	Title     string
	Content   EntryContent
	Image     string
	Tags      []string
	Mood      Mood
	MoodScore int
}

// Text returns the event and evidence joined by a space, the text the
// affirmation keywords are matched against.
func (d EntryDraft) Text() string {
	return d.Content.Event + " " + d.Content.Evidence
}

// Draft returns the parts of an entry that were authored by the user.
func (e DiaryEntry) Draft() EntryDraft {
	return EntryDraft{
		Title:     e.Title,
		Content:   e.Content,
		Image:     e.Image,
		Tags:      append([]string(nil), e.Tags...),
		Mood:      e.Mood,
		MoodScore: e.MoodScore,
	}
}

// AddTag appends tag unless it is blank or already present.
func (d *EntryDraft) AddTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	for _, t := range d.Tags {
		if t == tag {
			return
		}
	}
	d.Tags = append(d.Tags, tag)
}
