package cli

import (
	"fmt"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/journal"
)

type TagListCmd struct{}

func (c *TagListCmd) Run(ctx *Context) error {
	settings, err := ctx.Journal.Settings()
	if err != nil {
		return err
	}
	for _, tag := range journal.AllTags(settings) {
		if constants.IsDefaultTag(tag) {
			ctx.printf("  %s\n", tag)
		} else {
			ctx.printf("  %s %s\n", tagStyle.Render(tag), mutedStyle.Render("(custom)"))
		}
	}
	return nil
}

type TagAddCmd struct {
	Tag string `arg:"" help:"Tag to add."`
}

func (c *TagAddCmd) Run(ctx *Context) error {
	added, err := ctx.Journal.AddCustomTag(c.Tag)
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("tag %q is empty or already exists", c.Tag)
	}
	ctx.printf("Added tag: %s\n", c.Tag)
	return nil
}
