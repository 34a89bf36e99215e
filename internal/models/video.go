package models

import (
	"fmt"
	"time"

	"github.com/mixtapehq/mixtape/internal/shared"
)

// Video is the metadata DTO for a search result from the video service.
type Video struct {
	VideoID      string
	Title        string
	Channel      string
	ThumbnailURL string
}

// Song converts cached video metadata into a remote Song.
func (v Video) Song() Song {
	return NewRemoteSong(v.VideoID, v.Title, v.Channel, v.ThumbnailURL)
}

// PersistedVideo is a cached video metadata record in the sqlite store.
//
// Implements [Model] with soft delete support.
type PersistedVideo struct {
	id        string
	sequence  int
	video     Video
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersistedVideo creates a PersistedVideo for the given DTO.
func NewPersistedVideo(sequence int, video Video) *PersistedVideo {
	now := time.Now()
	return &PersistedVideo{
		sequence:  sequence,
		video:     video,
		createdAt: now,
		updatedAt: now,
	}
}

func (v *PersistedVideo) ID() string            { return v.id }
func (v *PersistedVideo) SetID(id string)       { v.id = id }
func (v *PersistedVideo) Sequence() int         { return v.sequence }
func (v *PersistedVideo) Video() Video          { return v.video }
func (v *PersistedVideo) VideoID() string       { return v.video.VideoID }
func (v *PersistedVideo) Title() string         { return v.video.Title }
func (v *PersistedVideo) Channel() string       { return v.video.Channel }
func (v *PersistedVideo) ThumbnailURL() string  { return v.video.ThumbnailURL }
func (v *PersistedVideo) CreatedAt() time.Time  { return v.createdAt }
func (v *PersistedVideo) UpdatedAt() time.Time  { return v.updatedAt }
func (v *PersistedVideo) DeletedAt() *time.Time { return v.deletedAt }

func (v *PersistedVideo) SetUpdatedAt(t time.Time)  { v.updatedAt = t }
func (v *PersistedVideo) SetDeletedAt(t *time.Time) { v.deletedAt = t }

// Validate checks the record's invariants.
func (v *PersistedVideo) Validate() error {
	if v.video.VideoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingField)
	}
	if v.video.Title == "" {
		return fmt.Errorf("%w: video title", shared.ErrMissingField)
	}
	return nil
}
