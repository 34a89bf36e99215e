package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mixtapehq/mixtape/internal/formatter"
	"github.com/mixtapehq/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
)

// Export renders a playlist in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	format := cmd.String("format")
	outputPath := cmd.String("output")

	lib, err := r.loadLibrary(ctx, cmd.String("user"))
	if err != nil {
		return err
	}

	playlist := lib.User().FindPlaylist(name)
	if playlist == nil {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
	}

	var data []byte
	switch format {
	case "csv":
		data, err = formatter.ExportToCSV(*playlist)
	case "md", "markdown":
		data, err = formatter.ExportToMarkdown(*playlist)
	case "txt", "text":
		data, err = formatter.ExportToText(*playlist)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return fmt.Errorf("failed to export playlist: %w", err)
	}

	if outputPath == "" {
		return r.writePlain("%s", data)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return r.writePlain("✓ Exported %q to %s\n", name, outputPath)
}
