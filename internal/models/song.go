package models

import (
	"fmt"

	"github.com/mixtapehq/mixtape/internal/shared"
)

// SongKind discriminates the two playable variants.
type SongKind string

const (
	// SongRemote references a video on an external service by its video id.
	SongRemote SongKind = "remote"
	// SongLocal references an uploaded audio file by a generated id.
	SongLocal SongKind = "local"
)

// Song is a playable item in a playlist.
//
// The identifier is unified at ingestion time: remote songs carry the
// external video id, local songs a generated UUID. Within one playlist
// identifiers are unique. Rating 0 means unrated.
type Song struct {
	ID           string   `json:"id"`
	Kind         SongKind `json:"kind"`
	Title        string   `json:"title"`
	Channel      string   `json:"channel,omitempty"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	FileURL      string   `json:"fileUrl,omitempty"`
	Rating       int      `json:"rating,omitempty"`
}

// NewRemoteSong builds a Song for an external video.
func NewRemoteSong(videoID, title, channel, thumbnailURL string) Song {
	return Song{
		ID:           videoID,
		Kind:         SongRemote,
		Title:        title,
		Channel:      channel,
		ThumbnailURL: thumbnailURL,
	}
}

// NewLocalSong builds a Song for an uploaded audio file with a generated id.
func NewLocalSong(fileURL, title string) Song {
	return Song{
		ID:      shared.GenerateID(),
		Kind:    SongLocal,
		Title:   title,
		Channel: "My Uploads",
		FileURL: fileURL,
	}
}

// Rated reports whether the song carries a user rating.
func (s Song) Rated() bool {
	return s.Rating >= 1 && s.Rating <= 5
}

// Validate checks the song's invariants.
func (s Song) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingField)
	}
	if s.Title == "" {
		return fmt.Errorf("%w: song title", shared.ErrMissingField)
	}
	if s.Kind != SongRemote && s.Kind != SongLocal {
		return fmt.Errorf("%w: unknown song kind %q", shared.ErrInvalidArgument, s.Kind)
	}
	if s.Kind == SongLocal && s.FileURL == "" {
		return fmt.Errorf("%w: local song file url", shared.ErrMissingField)
	}
	if s.Rating != 0 && !s.Rated() {
		return shared.ErrInvalidRating
	}
	return nil
}

// Playlist is a named, ordered collection of songs belonging to one user.
type Playlist struct {
	Name  string `json:"name"`
	Songs []Song `json:"songs"`
}

// FindSong returns the song with the given identifier and whether it exists.
func (p Playlist) FindSong(id string) (Song, bool) {
	for _, s := range p.Songs {
		if s.ID == id {
			return s, true
		}
	}
	return Song{}, false
}

// ContainsSong reports whether the playlist holds a song with the given identifier.
func (p Playlist) ContainsSong(id string) bool {
	_, ok := p.FindSong(id)
	return ok
}
