package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mixtapehq/mixtape/internal/repositories"
	"github.com/mixtapehq/mixtape/internal/server"
	"github.com/mixtapehq/mixtape/internal/services"
	"github.com/mixtapehq/mixtape/internal/shared"
	"github.com/mixtapehq/mixtape/internal/store"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.config
	if port := cmd.Int("port"); port > 0 {
		config.Server.Port = int(port)
	}

	// The video cache is optional; a missing database just means every
	// proxy request goes upstream.
	if yt, ok := r.youtube.(*services.YouTubeService); ok {
		if db, err := shared.NewDatabase(config.Database.Path); err != nil {
			r.logger.Warn("video cache unavailable", "error", err)
		} else {
			defer db.Close()
			yt.SetCache(repositories.NewVideoCacheAdapter(repositories.NewVideoRepository(db)))
		}
	}

	userStore := store.New(config.Store.DataFile)
	srv := server.New(config, userStore, r.youtube, r.logger)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.writePlain("mixtape server listening on %s\n", config.Server.Addr())
	if err := srv.Run(runCtx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
