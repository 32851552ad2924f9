package cli

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/journal"
	"github.com/julianstephens/worthy/internal/models"
)

type WriteCmd struct {
	Event       string   `short:"e" help:"What happened."`
	Feeling     string   `short:"f" help:"How it felt. Derived from the score when empty."`
	Evidence    string   `short:"v" help:"Why this shows you are worthy (or what hurt, on a hard day)."`
	Score       int      `short:"s" help:"Mood score from 0 to 100." default:"50"`
	Mood        string   `short:"m" help:"Mood label. Derived from the score when empty."`
	Tag         []string `short:"t" help:"Tag to attach. Repeatable."`
	Title       string   `help:"Entry title."`
	Image       string   `type:"path" help:"Photo to attach."`
	Interactive bool     `short:"i" help:"Compose the entry in a form."`
}

func (c *WriteCmd) Validate() error {
	if !models.ValidMoodScore(c.Score) {
		return fmt.Errorf("score must be between %d and %d", constants.MoodScoreMin, constants.MoodScoreMax)
	}
	return nil
}

func (c *WriteCmd) Run(ctx *Context) error {
	draft := models.EntryDraft{
		Title: c.Title,
		Content: models.EntryContent{
			Event:    c.Event,
			Feeling:  c.Feeling,
			Evidence: c.Evidence,
		},
		Mood:      models.Mood(c.Mood),
		MoodScore: c.Score,
	}
	for _, tag := range c.Tag {
		draft.AddTag(tag)
	}

	if c.Interactive {
		settings, err := ctx.Journal.Settings()
		if err != nil {
			return err
		}
		if err := fillDraftInteractively(&draft, journal.AllTags(settings)); err != nil {
			return err
		}
	}

	if c.Image != "" {
		image, err := loadImage(c.Image)
		if err != nil {
			return err
		}
		draft.Image = image
	}

	entry, err := ctx.Journal.Create(draft)
	if err != nil {
		return err
	}

	for _, tag := range entry.Tags {
		if _, err := ctx.Journal.AddCustomTag(tag); err != nil {
			return fmt.Errorf("entry saved, but failed to remember tag %q: %w", tag, err)
		}
	}

	ctx.println(successStyle.Render(fmt.Sprintf("✓ Saved entry %s (%s, %s)", shortID(entry.ID), entry.Date, moodLabel(entry))))
	ctx.println()
	ctx.println(affirmationStyle.Render(entry.AIResponse))
	return nil
}

// loadImage reads an image file into a data URI.
func loadImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s is not an image (detected %s)", path, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

type entryFormModel struct {
	Event    string
	Score    string
	Feeling  string
	Evidence string
	Tags     []string
	NewTag   string
}

func newEntryForm(fm *entryFormModel, tags []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What happened?").
				Value(&fm.Event).
				Validate(required("event")),
			huh.NewInput().
				Title("Mood score (0-100)").
				Value(&fm.Score).
				Validate(func(s string) error {
					_, err := parseScore(s)
					return err
				}),
			huh.NewInput().
				Title("How did it feel?").
				Description("Leave empty to describe the score").
				Value(&fm.Feeling),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Why does this show you are worthy?").
				Description("On a hard day, write down what hurt").
				Value(&fm.Evidence).
				Validate(required("evidence")),
			huh.NewMultiSelect[string]().
				Title("Tags").
				Options(huh.NewOptions(tags...)...).
				Value(&fm.Tags),
			huh.NewInput().
				Title("New tag").
				Value(&fm.NewTag),
		),
	)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func parseScore(s string) (int, error) {
	score, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("score must be a number")
	}
	if !models.ValidMoodScore(score) {
		return 0, fmt.Errorf("score must be between %d and %d", constants.MoodScoreMin, constants.MoodScoreMax)
	}
	return score, nil
}

// fillDraftInteractively runs the entry form, starting from the values
// already in draft.
func fillDraftInteractively(draft *models.EntryDraft, tags []string) error {
	fm := &entryFormModel{
		Event:    draft.Content.Event,
		Score:    strconv.Itoa(draft.MoodScore),
		Feeling:  draft.Content.Feeling,
		Evidence: draft.Content.Evidence,
		Tags:     draft.Tags,
	}
	if err := newEntryForm(fm, tags).Run(); err != nil {
		return err
	}
	return fm.apply(draft)
}

func (fm *entryFormModel) apply(draft *models.EntryDraft) error {
	score, err := parseScore(fm.Score)
	if err != nil {
		return err
	}
	draft.Content = models.EntryContent{
		Event:    fm.Event,
		Feeling:  fm.Feeling,
		Evidence: fm.Evidence,
	}
	draft.MoodScore = score
	draft.Tags = nil
	for _, tag := range fm.Tags {
		draft.AddTag(tag)
	}
	draft.AddTag(fm.NewTag)
	return nil
}
