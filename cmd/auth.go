package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/mixtapehq/mixtape/internal/server"
	"github.com/mixtapehq/mixtape/internal/services"
	"github.com/mixtapehq/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthYouTube performs the OAuth2 authorization code flow for the YouTube
// Data API and saves the token for later runs.
//
// Starts a local HTTP server, opens a browser for user consent, and
// exchanges the auth code for tokens.
func (r *Runner) AuthYouTube(ctx context.Context, cmd *cli.Command) error {
	config := r.config

	if config.Credentials.YouTube.ClientID == "" || config.Credentials.YouTube.ClientSecret == "" {
		return fmt.Errorf("%w: YouTube client_id and client_secret must be set in config.toml", shared.ErrInvalidArgument)
	}

	yt, ok := r.youtube.(*services.YouTubeService)
	if !ok || yt.GetOAuthConfig() == nil {
		return fmt.Errorf("%w: OAuth not configured", shared.ErrServiceUnavailable)
	}

	token, err := r.doOAuth(config, yt)
	if err != nil {
		return err
	}

	if err := yt.Authenticate(ctx, token); err != nil {
		return fmt.Errorf("failed to install token: %w", err)
	}

	tokenPath := config.Credentials.YouTube.TokenPath
	if tokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		tokenPath = filepath.Join(home, ".mixtape", "token.json")
	}

	if err := saveToken(tokenPath, token); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Token saved to %s\n", tokenPath)

	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(config *shared.Config, yt *services.YouTubeService) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := yt.GetAuthURL(state)
	oauthHandler := server.NewOAuthHandler(yt.GetOAuthConfig(), state)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	// Listen where the registered redirect URI points, not on the API port.
	addr := config.Server.Addr()
	if redirect, err := url.Parse(config.Credentials.YouTube.RedirectURI); err == nil && redirect.Host != "" {
		addr = redirect.Host
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for YouTube authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
