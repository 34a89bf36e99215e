// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, searchCommand, playlistCommand, exportCommand, authCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func userFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Username owning the playlist collection",
	}
}

// setupCommand initializes config, database and migrations
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml, initialize the video cache database and run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// serveCommand runs the HTTP server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the mixtape HTTP server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// searchCommand queries the video provider
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search YouTube for candidate songs",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Search,
	}
}

// playlistCommand manages the playlist collection through the server
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List playlists and their songs",
				Flags:  []cli.Flag{userFlag(), &cli.BoolFlag{Name: "json"}, &cli.BoolFlag{Name: "pretty"}},
				Action: r.PlaylistList,
			},
			{
				Name:      "create",
				Usage:     "Create an empty playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags:     []cli.Flag{userFlag()},
				Action:    r.PlaylistCreate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Flags:     []cli.Flag{userFlag()},
				Action:    r.PlaylistDelete,
			},
			{
				Name:      "add",
				Usage:     "Add a YouTube video to a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}, &cli.StringArg{Name: "video"}},
				Flags:     []cli.Flag{userFlag()},
				Action:    r.PlaylistAdd,
			},
			{
				Name:      "remove",
				Usage:     "Remove a song from a playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}, &cli.StringArg{Name: "id"}},
				Flags:     []cli.Flag{userFlag()},
				Action:    r.PlaylistRemove,
			},
			{
				Name:      "rate",
				Usage:     "Rate a song 1-5",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}, &cli.StringArg{Name: "id"}, &cli.StringArg{Name: "rating"}},
				Flags:     []cli.Flag{userFlag()},
				Action:    r.PlaylistRate,
			},
		},
	}
}

// exportCommand renders a playlist to CSV, Markdown or plain text
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a playlist to CSV, Markdown or plain text",
		Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
		Flags: []cli.Flag{
			userFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv, md or txt",
				Value:   "txt",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to stdout)",
			},
		},
		Action: r.Export,
	}
}

// authCommand handles provider authentication
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with external providers",
		Commands: []*cli.Command{
			{
				Name:   "youtube",
				Usage:  "Authenticate with YouTube using OAuth2",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthYouTube,
			},
		},
	}
}

// apiCommand handles direct server API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the mixtape server",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Direct GET to the server, prints raw JSON",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// tuiCommand launches the terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse and play playlists in the terminal",
		Flags:  []cli.Flag{userFlag()},
		Action: r.TUI,
	}
}
