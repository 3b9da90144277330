package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/iliyamo/habit-tracker/internal/cli"
	"github.com/iliyamo/habit-tracker/internal/client"
	"github.com/iliyamo/habit-tracker/internal/tokenstore"
)

func main() {
	var app cli.App
	kctx := kong.Parse(&app,
		kong.Name("habitctl"),
		kong.Description("Command line client for the habit tracker API."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := kctx.Run(&cli.Context{
		Ctx:    ctx,
		Client: client.New(app.APIURL),
		Tokens: tokenstore.New(app.APIURL),
		Out:    os.Stdout,
	})
	kctx.FatalIfErrorf(err)
}
