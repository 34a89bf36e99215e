package repositories

import (
	"fmt"
	"strings"

	"github.com/mixtapehq/mixtape/internal/models"
)

// VideoCacheAdapter implements services.VideoCacher using VideoRepository.
//
// Provides automatic video metadata caching with deduplication via the
// video_id UNIQUE constraint. Duplicate videos are silently ignored.
type VideoCacheAdapter struct {
	repo *VideoRepository
}

// NewVideoCacheAdapter creates a new VideoCacheAdapter with the given repository
func NewVideoCacheAdapter(repo *VideoRepository) *VideoCacheAdapter {
	return &VideoCacheAdapter{repo: repo}
}

// CacheVideo caches video metadata from a search or details lookup.
// Returns nil if the video already exists (deduplication).
// Only returns errors for actual failures (not constraint violations).
func (a *VideoCacheAdapter) CacheVideo(video models.Video) error {
	existing, err := a.repo.GetByVideoID(video.VideoID)
	if err == nil && existing != nil {
		return nil
	}

	persisted := models.NewPersistedVideo(0, video)

	err = a.repo.Create(persisted)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache video: %w", err)
	}

	return nil
}

// Lookup returns cached metadata for the given external video id, or nil
// when the id has not been seen.
func (a *VideoCacheAdapter) Lookup(videoID string) (*models.Video, error) {
	persisted, err := a.repo.GetByVideoID(videoID)
	if err != nil {
		return nil, nil
	}
	video := persisted.Video()
	return &video, nil
}
