package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/worthy/internal/affirmation"
	"github.com/julianstephens/worthy/internal/backup"
	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/journal"
	"github.com/julianstephens/worthy/internal/models"
	"github.com/julianstephens/worthy/internal/storage"
)

// Context is bound to every command by kong. The store is already open
// when a command runs.
type Context struct {
	Journal  *journal.Service
	Backups  *backup.Service
	Manager  *backup.Manager
	Selector *affirmation.Selector

	Out io.Writer
	In  io.Reader

	// Confirm asks a yes/no question. Nil uses a huh confirmation.
	Confirm func(title, description string) (bool, error)
}

// NewContext wires the services for an open store.
func NewContext(store storage.Provider) *Context {
	selector := affirmation.NewSelector()
	return &Context{
		Journal:  journal.NewService(store, selector),
		Backups:  backup.NewService(store),
		Manager:  backup.NewManager(store.GetDataPath()),
		Selector: selector,
		Out:      os.Stdout,
		In:       os.Stdin,
	}
}

// Store returns the provider behind the journal service.
func (c *Context) Store() storage.Provider {
	return c.Journal.Store()
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) confirm(title, description string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// warnIfBackupStale prints a reminder when the last export is older than
// BackupStaleAfter.
func (c *Context) warnIfBackupStale() {
	status, err := c.Journal.BackupStatus()
	if err != nil || !status.Stale {
		return
	}
	days := int(status.Age / (24 * time.Hour))
	c.println(warningStyle.Render(fmt.Sprintf("⚠ Last backup was %d days ago. Run `worthy export` to save a copy.", days)))
}

// parseDay accepts YYYY-MM-DD or "today".
func (c *Context) parseDay(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "today" {
		return c.Journal.Now().In(c.Journal.Location()).Format(constants.DateFormat), nil
	}
	if _, err := time.Parse(constants.DateFormat, value); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD or 'today')", value)
	}
	return value, nil
}

// shortID is the id prefix shown in listings; Get accepts it back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func moodLabel(entry models.DiaryEntry) string {
	return fmt.Sprintf("%s %d", entry.Mood, entry.MoodScore)
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "#" + strings.Join(tags, " #")
}

// entryLine renders one listing row.
func (c *Context) entryLine(entry models.DiaryEntry) string {
	when := entry.Time().In(c.Journal.Location()).Format("2006-01-02 15:04")
	event := strings.ReplaceAll(entry.Content.Event, "\n", " ")
	line := fmt.Sprintf("%s  %s  %s  %s",
		mutedStyle.Render(when),
		idStyle.Render(shortID(entry.ID)),
		moodStyle(entry.MoodScore).Render("["+moodLabel(entry)+"]"),
		summaryStyle.Render(event),
	)
	if entry.Favorite {
		line += " ★"
	}
	if tags := formatTags(entry.Tags); tags != "" {
		line += "  " + tagStyle.Render(tags)
	}
	return line
}

// printEntry renders the full entry.
func (c *Context) printEntry(entry models.DiaryEntry) {
	when := entry.Time().In(c.Journal.Location()).Format("2006-01-02 15:04")
	c.println(titleStyle.Render(entry.Title) + "  " + mutedStyle.Render(when))
	c.printf("ID:       %s\n", entry.ID)
	c.printf("Mood:     %s\n", moodStyle(entry.MoodScore).Render(moodLabel(entry)))
	if tags := formatTags(entry.Tags); tags != "" {
		c.printf("Tags:     %s\n", tagStyle.Render(tags))
	}
	if entry.HasImage() {
		c.printf("Photo:    attached (%d bytes)\n", len(entry.Image))
	}
	if entry.Favorite {
		c.println("Favorite: ★")
	}
	c.println()
	c.println(labelStyle.Render("What happened"))
	c.println(entry.Content.Event)
	c.println()
	c.println(labelStyle.Render("How it felt"))
	c.println(entry.Content.Feeling)
	c.println()
	c.println(labelStyle.Render("Why I am worthy"))
	c.println(entry.Content.Evidence)
	if entry.AIResponse != "" {
		c.println()
		c.println(affirmationStyle.Render(entry.AIResponse))
	}
}

// bar draws a proportional bar of at most width cells.
func bar(count, total, width int) string {
	if total == 0 || count == 0 {
		return ""
	}
	n := count * width / total
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// centered pads s to width for column output.
func centered(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, s)
}
