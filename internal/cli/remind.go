package cli

import "fmt"

// RemindCmd prints the writing reminder when it is due. It is meant to be
// run from a shell profile or a scheduler.
type RemindCmd struct {
	Verbose bool `short:"v" help:"Explain why no reminder is shown."`
}

func (c *RemindCmd) Run(ctx *Context) error {
	status, err := ctx.Journal.Reminder()
	if err != nil {
		return err
	}

	if status.Due {
		settings, err := ctx.Journal.Settings()
		if err != nil {
			return err
		}
		ctx.println(titleStyle.Render(fmt.Sprintf("%s, it's %s.", settings.UserName, status.At.Format("15:04"))))
		if greeting := ctx.Selector.Greeting(); greeting != "" {
			ctx.println(affirmationStyle.Render(greeting))
		}
		ctx.println("Run `worthy write` to record today.")
		return nil
	}

	if !c.Verbose {
		return nil
	}
	switch {
	case !status.Enabled:
		ctx.println("Reminders are disabled. Enable them with `worthy settings set --reminder`.")
	case status.WroteToday:
		ctx.println("You already wrote today.")
	default:
		ctx.printf("Next reminder at %s.\n", status.At.Format("15:04"))
	}
	return nil
}
