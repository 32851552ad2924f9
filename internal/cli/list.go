package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/worthy/internal/journal"
	"github.com/julianstephens/worthy/internal/models"
)

// FilterFlags are shared by the listing commands.
type FilterFlags struct {
	Search string `short:"q" help:"Match event, evidence and tags."`
	Date   string `help:"Only entries from this day (YYYY-MM-DD or 'today')."`
	Tag    string `short:"t" help:"Only entries with this tag."`
	Mood   string `short:"m" help:"Only entries with this mood label."`
}

func (f FilterFlags) filter(ctx *Context) (journal.Filter, error) {
	day, err := ctx.parseDay(f.Date)
	if err != nil {
		return journal.Filter{}, err
	}
	return journal.Filter{
		Search: f.Search,
		Date:   day,
		Tag:    f.Tag,
		Mood:   models.Mood(f.Mood),
	}, nil
}

type ListCmd struct {
	FilterFlags `embed:""`

	Limit int  `short:"n" help:"Show at most this many entries."`
	JSON  bool `help:"Print entries as JSON."`
}

func (c *ListCmd) Run(ctx *Context) error {
	filter, err := c.filter(ctx)
	if err != nil {
		return err
	}
	filter.Limit = c.Limit

	entries, err := ctx.Journal.List(filter)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.out())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(entries)
	}

	ctx.warnIfBackupStale()

	if len(entries) == 0 {
		if filter.IsZero() {
			ctx.println("No entries yet. Run `worthy write` to add one.")
		} else {
			ctx.println("No entries match.")
		}
		return nil
	}

	for _, entry := range entries {
		ctx.println(ctx.entryLine(entry))
	}
	ctx.println(mutedStyle.Render(fmt.Sprintf("%d entries", len(entries))))
	return nil
}

type ShowCmd struct {
	ID   string `arg:"" help:"Entry id or a unique prefix of at least four characters."`
	JSON bool   `help:"Print the entry as JSON."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	entry, err := ctx.Journal.Get(c.ID)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.out())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(entry)
	}

	ctx.printEntry(entry)
	return nil
}

type FavoriteCmd struct {
	ID string `arg:"" help:"Entry id or a unique prefix of at least four characters."`
}

func (c *FavoriteCmd) Run(ctx *Context) error {
	entry, err := ctx.Journal.Get(c.ID)
	if err != nil {
		return err
	}
	entry.Favorite = !entry.Favorite
	if err := ctx.Journal.Update(entry); err != nil {
		return err
	}
	if entry.Favorite {
		ctx.printf("★ Marked %s as favorite\n", shortID(entry.ID))
	} else {
		ctx.printf("Removed %s from favorites\n", shortID(entry.ID))
	}
	return nil
}
