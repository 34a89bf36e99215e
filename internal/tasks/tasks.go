// Package tasks holds the sync layer bridging the in-memory library and the
// backing store's playlist endpoints. Sync is best-effort: a failed push is
// logged and the in-memory state kept, never rolled back.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mixtapehq/mixtape/internal/library"
	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/services"
	"github.com/mixtapehq/mixtape/internal/session"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// Syncer pushes the whole playlist collection to the backing store and
// mirrors it into the session cache. There is no partial sync; every call
// round-trips the full collection.
type Syncer struct {
	api    *services.APIService
	cache  *session.Cache
	logger *log.Logger
}

// syncRequest is the wholesale-replace payload for POST /api/playlists.
type syncRequest struct {
	Username  string            `json:"username"`
	Playlists []models.Playlist `json:"playlists"`
}

// NewSyncer creates a syncer over the given API client and session cache.
// The cache may be nil when no local mirror is wanted.
func NewSyncer(api *services.APIService, cache *session.Cache, logger *log.Logger) *Syncer {
	if logger == nil {
		logger = shared.NewLogger(os.Stderr)
	}

	return &Syncer{
		api:    api,
		cache:  cache,
		logger: logger.With("component", "sync"),
	}
}

// Sync serializes the user's full playlist collection and replaces the
// stored one. On success the session cache is overwritten with the user
// record; on failure the error is logged and returned, and the caller's
// in-memory state stands.
func (s *Syncer) Sync(ctx context.Context, user *models.User) error {
	if user == nil || user.Username == "" {
		return fmt.Errorf("%w: no user to sync", shared.ErrInvalidArgument)
	}

	payload := syncRequest{Username: user.Username, Playlists: user.Playlists}
	if payload.Playlists == nil {
		payload.Playlists = []models.Playlist{}
	}

	resp, err := s.api.PostJSON(ctx, "/api/playlists", payload)
	if err != nil {
		s.logger.Warn("sync failed, keeping local state", "user", user.Username, "error", err)
		return fmt.Errorf("%w: %v", shared.ErrSyncFailed, err)
	}
	if !resp.OK() {
		s.logger.Warn("sync rejected, keeping local state", "user", user.Username, "status", resp.StatusCode)
		return fmt.Errorf("%w: server returned status %d", shared.ErrSyncFailed, resp.StatusCode)
	}

	s.mirror(user)
	return nil
}

// FetchAll returns the stored playlist collection for username.
func (s *Syncer) FetchAll(ctx context.Context, username string) ([]models.Playlist, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: no username", shared.ErrInvalidArgument)
	}

	resp, err := s.api.Get(ctx, "/api/playlists/"+username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSyncFailed, err)
	}
	if resp.StatusCode == 404 {
		return nil, fmt.Errorf("%w: %s", shared.ErrUserNotFound, username)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: server returned status %d", shared.ErrSyncFailed, resp.StatusCode)
	}

	var playlists []models.Playlist
	if err := json.Unmarshal(resp.Body, &playlists); err != nil {
		return nil, fmt.Errorf("%w: bad playlist payload: %v", shared.ErrSyncFailed, err)
	}

	return playlists, nil
}

// Refresh replaces the library's in-memory collection wholesale with the
// stored one. Called once at startup, before any mutation.
func (s *Syncer) Refresh(ctx context.Context, lib *library.Library) error {
	user := lib.User()

	playlists, err := s.FetchAll(ctx, user.Username)
	if err != nil {
		return err
	}

	lib.SetCollection(playlists)
	s.mirror(user)
	return nil
}

func (s *Syncer) mirror(user *models.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(session.KeyCurrentUser, user.Sanitized()); err != nil {
		// Mirror failures never fail the sync; the store already has the data.
		s.logger.Warn("failed to mirror user into session cache", "error", err)
	}
}
