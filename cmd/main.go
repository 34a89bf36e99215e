package main

import (
	"context"
	"errors"
	"os"

	"github.com/mixtapehq/mixtape/internal/services"
	"github.com/mixtapehq/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	youtubeService := services.NewYouTubeService("", config.Credentials.YouTube.APIKey)
	if config.Credentials.YouTube.ClientID != "" && config.Credentials.YouTube.ClientSecret != "" {
		youtubeService.ConfigureOAuth(
			config.Credentials.YouTube.ClientID,
			config.Credentials.YouTube.ClientSecret,
			config.Credentials.YouTube.RedirectURI,
		)
	}

	apiService := services.NewAPIService("http://"+config.Server.Addr(), nil)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		YouTube: youtubeService,
		API:     apiService,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "mixtape",
		Usage:    "Manage and play playlists of YouTube videos & uploaded audio",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
