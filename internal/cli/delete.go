package cli

import "fmt"

type DeleteCmd struct {
	ID  string `arg:"" help:"Entry id or a unique prefix of at least four characters."`
	Yes bool   `short:"y" help:"Delete without asking."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	entry, err := ctx.Journal.Get(c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.confirm(
			"Delete this entry?",
			fmt.Sprintf("%s: %s", entry.Date, entry.Content.Event),
		)
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Journal.Delete(entry.ID); err != nil {
		return err
	}
	ctx.printf("Deleted entry %s\n", shortID(entry.ID))
	return nil
}
