package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

// @title u-wave API
// @version 1.0
// @BasePath /
func main() {
	// persistent, so subcommands read it too
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a TOML configuration file; environment variables override it",
		Sources: cli.EnvVars("UWAVE_CONFIG"),
	}

	app := &cli.Command{
		Name:   "uwave-api",
		Usage:  "HTTP API for playlists, users and moderation of a listening room",
		Flags:  []cli.Flag{configFlag},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Create or upgrade the database schema and exit",
				Action: migrate,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "uwave-api: %v\n", err)
		os.Exit(1)
	}
}
