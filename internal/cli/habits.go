package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/iliyamo/habit-tracker/internal/client"
)

type HabitsCmd struct {
	List   HabitListCmd   `cmd:"" default:"1" help:"List your habits."`
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Update HabitUpdateCmd `cmd:"" help:"Change a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its check-ins."`
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.authorize(); err != nil {
		return err
	}
	habits, err := ctx.Client.ListHabits(ctx.Ctx)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.printf("No habits yet. Add one with 'habitctl habits add <name>'.\n")
		return nil
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tFREQUENCY\tTARGET\tACTIVE\tCREATED")
	for _, h := range habits {
		active := "yes"
		if !h.IsActive {
			active = "no"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			h.ID, h.Name, h.Category, h.Frequency, h.TargetDays, active, humanize.Time(h.CreatedAt))
	}
	return w.Flush()
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Category  string `short:"c" help:"Category (default other)."`
	Frequency string `short:"f" help:"daily or weekly (default daily)."`
	Target    int    `short:"t" help:"Target days per period (default 1)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.authorize(); err != nil {
		return err
	}
	req := client.HabitRequest{Name: c.Name}
	if c.Category != "" {
		req.Category = &c.Category
	}
	if c.Frequency != "" {
		req.Frequency = &c.Frequency
	}
	if c.Target != 0 {
		req.TargetDays = &c.Target
	}
	id, err := ctx.Client.CreateHabit(ctx.Ctx, req)
	if err != nil {
		return err
	}
	ctx.printf("Added habit %d: %s\n", id, c.Name)
	return nil
}

// HabitUpdateCmd sends a full replacement; flags left unset keep the
// habit's current values.
type HabitUpdateCmd struct {
	ID        uint64 `arg:"" help:"Habit ID."`
	Name      string `short:"n" help:"New name."`
	Category  string `short:"c" help:"New category."`
	Frequency string `short:"f" help:"daily or weekly."`
	Target    int    `short:"t" help:"Target days per period."`
	Pause     bool   `xor:"state" help:"Mark the habit inactive."`
	Resume    bool   `xor:"state" help:"Mark the habit active."`
}

func (c *HabitUpdateCmd) Run(ctx *Context) error {
	if err := ctx.authorize(); err != nil {
		return err
	}
	h, err := ctx.findHabit(c.ID)
	if err != nil {
		return err
	}

	if c.Name != "" {
		h.Name = c.Name
	}
	if c.Category != "" {
		h.Category = c.Category
	}
	if c.Frequency != "" {
		h.Frequency = c.Frequency
	}
	if c.Target != 0 {
		h.TargetDays = c.Target
	}
	switch {
	case c.Pause:
		h.IsActive = false
	case c.Resume:
		h.IsActive = true
	}

	req := client.HabitRequest{
		Name:       h.Name,
		Category:   &h.Category,
		Frequency:  &h.Frequency,
		TargetDays: &h.TargetDays,
		IsActive:   &h.IsActive,
	}
	if err := ctx.Client.UpdateHabit(ctx.Ctx, c.ID, req); err != nil {
		return err
	}
	ctx.printf("Updated habit %d.\n", c.ID)
	return nil
}

type HabitDeleteCmd struct {
	ID uint64 `arg:"" help:"Habit ID."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.authorize(); err != nil {
		return err
	}
	if err := ctx.Client.DeleteHabit(ctx.Ctx, c.ID); err != nil {
		return err
	}
	ctx.printf("Deleted habit %d.\n", c.ID)
	return nil
}
