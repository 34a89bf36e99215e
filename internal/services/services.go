// package services defines interface SearchService for video discovery
package services

import (
	"context"

	"github.com/mixtapehq/mixtape/internal/models"
)

// SearchService defines the interface for video search providers supplying
// candidate songs to be added to playlists.
type SearchService interface {
	// Search returns candidate videos matching a free-text query.
	Search(ctx context.Context, query string) ([]models.Video, error)

	// Videos returns metadata for a batch of external video identifiers.
	Videos(ctx context.Context, ids []string) ([]models.Video, error)

	// Name returns the name of the provider (e.g., "YouTube")
	Name() string
}

// VideoCacher caches video metadata fetched from a provider.
//
// Implemented by repositories.VideoCacheAdapter. Lookup misses return nil
// without error so callers can fall through to the upstream service.
type VideoCacher interface {
	CacheVideo(video models.Video) error
	Lookup(videoID string) (*models.Video, error)
}
