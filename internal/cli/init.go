package cli

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	store := ctx.Store()
	entries, err := store.ListEntries()
	if err != nil {
		return err
	}

	ctx.printf("Initialized worthy journal at: %s\n", store.GetDataPath())
	ctx.printf("Engine: %s, %d entries\n", store.Engine(), len(entries))
	if greeting := ctx.Selector.Greeting(); greeting != "" {
		ctx.println(affirmationStyle.Render(greeting))
	}
	return nil
}
