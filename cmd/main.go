package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

var version = "dev"

type CLI struct {
	Config string `help:"Path to a YAML config file." type:"path" env:"DEVJOBS_CONFIG"`

	VersionFlag kong.VersionFlag `name:"version" help:"Print version."`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the HTTP API."`
	Migrate MigrateCmd `cmd:"" help:"Create the database schema and seed job categories."`
	Token   TokenCmd   `cmd:"" help:"Issue an access token for local testing."`
}

func main() {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("devjobs"),
		kong.Description("Job board API: posting search and application lifecycle."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := kctx.Run(&cli); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
