package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mixtapehq/mixtape/internal/player"
	"github.com/mixtapehq/mixtape/internal/shared"
	"github.com/mixtapehq/mixtape/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing and playing playlists.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("user")
	if username == "" {
		return fmt.Errorf("%w: --user is required", shared.ErrMissingArgument)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/mixtape-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	lib, err := r.loadLibrary(ctx, username)
	if err != nil {
		return err
	}

	ctrl := player.NewController(player.NewAudioBackend(), player.NewVideoBackend(), fileLogger)
	model := ui.NewModel(ctx, lib, ctrl, r.syncer)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
