// Package cli holds the habitctl subcommands. Each command is a kong
// struct with a Run(*Context) method.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/iliyamo/habit-tracker/internal/client"
	"github.com/iliyamo/habit-tracker/internal/model"
	"github.com/iliyamo/habit-tracker/internal/tokenstore"
)

type Context struct {
	Ctx    context.Context
	Client *client.Client
	Tokens *tokenstore.Store
	Out    io.Writer
}

// authorize loads the stored token into the client.
func (c *Context) authorize() error {
	tok, err := c.Tokens.Get()
	if err != nil {
		return err
	}
	c.Client.SetToken(tok)
	return nil
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

// findHabit returns the caller's habit with the given id.
func (c *Context) findHabit(id uint64) (model.Habit, error) {
	habits, err := c.Client.ListHabits(c.Ctx)
	if err != nil {
		return model.Habit{}, err
	}
	for _, h := range habits {
		if h.ID == id {
			return h, nil
		}
	}
	return model.Habit{}, fmt.Errorf("habit %d not found", id)
}
