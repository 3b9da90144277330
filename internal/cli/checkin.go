package cli

type CheckinCmd struct {
	ID uint64 `arg:"" help:"Habit ID."`
}

func (c *CheckinCmd) Run(ctx *Context) error {
	if err := ctx.authorize(); err != nil {
		return err
	}
	date, err := ctx.Client.CheckIn(ctx.Ctx, c.ID)
	if err != nil {
		return err
	}
	ctx.printf("Checked in habit %d for %s.\n", c.ID, date)
	return nil
}

type HistoryCmd struct {
	ID uint64 `arg:"" help:"Habit ID."`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if err := ctx.authorize(); err != nil {
		return err
	}
	entries, err := ctx.Client.History(ctx.Ctx, c.ID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ctx.printf("No check-ins yet.\n")
		return nil
	}
	for _, e := range entries {
		mark := "x"
		if !e.Completed {
			mark = " "
		}
		line := "[" + mark + "] " + e.Date
		if e.Notes != nil && *e.Notes != "" {
			line += "  " + *e.Notes
		}
		ctx.printf("%s\n", line)
	}
	return nil
}
