package main

import (
	"context"
	"fmt"

	"github.com/mixtapehq/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the video provider and prints candidate songs.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Infof("searching %s for %q", r.youtube.Name(), query)

	videos, err := r.youtube.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(videos, pretty)
	}

	if len(videos) == 0 {
		return r.writePlain("No results for %q\n", query)
	}

	r.writePlain("Results for %q:\n\n", query)
	for i, video := range videos {
		r.writePlain("%2d. %s\n", i+1, video.Title)
		r.writePlain("    %s • %s\n", video.Channel, video.VideoID)
	}

	return nil
}
