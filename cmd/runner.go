package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mixtapehq/mixtape/internal/library"
	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/services"
	"github.com/mixtapehq/mixtape/internal/session"
	"github.com/mixtapehq/mixtape/internal/shared"
	"github.com/mixtapehq/mixtape/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	youtube    services.SearchService
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	syncer     *tasks.Syncer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	YouTube    services.SearchService
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	cache := session.NewCache(opts.Config.Store.SessionFile)
	syncer := tasks.NewSyncer(opts.API, cache, opts.Logger)

	return &Runner{
		config:     opts.Config,
		youtube:    opts.YouTube,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		syncer:     syncer,
	}
}

// SetLogger swaps the runner's logger, used by the TUI to redirect logs to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// loadLibrary fetches the user's playlist collection from the server and
// wraps it in an in-memory library.
func (r *Runner) loadLibrary(ctx context.Context, username string) (*library.Library, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: --user is required", shared.ErrMissingArgument)
	}

	playlists, err := r.syncer.FetchAll(ctx, username)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, Playlists: playlists}
	return library.New(user), nil
}

// saveLibrary pushes the library's collection back to the server.
func (r *Runner) saveLibrary(ctx context.Context, lib *library.Library) error {
	return r.syncer.Sync(ctx, lib.User())
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
