package player

import (
	"fmt"

	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// Backend plays one song at a time.
type Backend interface {
	// Play starts or restarts playback of the given song.
	Play(song models.Song) error

	// Stop halts playback and releases whatever the backend holds.
	Stop() error

	// Name returns the backend name for logs and errors.
	Name() string
}

// EndNotifier is implemented by backends that can report the natural end of
// the current media, which the controller turns into an auto-advance.
type EndNotifier interface {
	OnEnd(fn func())
}

// VideoBackend is the embedded-video backend. It records load-by-id requests
// for a host surface (the web client's iframe, or the TUI's now-playing view)
// to act on; the process itself renders no video.
type VideoBackend struct {
	videoID string
	playing bool
	onEnd   func()
}

// NewVideoBackend creates an embedded-video backend.
func NewVideoBackend() *VideoBackend {
	return &VideoBackend{}
}

// Play loads the song's external video id. Local songs are rejected.
func (b *VideoBackend) Play(song models.Song) error {
	if song.Kind != models.SongRemote {
		return fmt.Errorf("%w: video backend cannot play %s songs", shared.ErrInvalidArgument, song.Kind)
	}

	b.videoID = song.ID
	b.playing = true
	return nil
}

// Stop clears the loaded video.
func (b *VideoBackend) Stop() error {
	b.videoID = ""
	b.playing = false
	return nil
}

// Name returns "video".
func (b *VideoBackend) Name() string {
	return "video"
}

// OnEnd registers the controller's auto-advance callback.
func (b *VideoBackend) OnEnd(fn func()) {
	b.onEnd = fn
}

// CurrentVideoID returns the loaded external video id, empty when stopped.
func (b *VideoBackend) CurrentVideoID() string {
	return b.videoID
}

// Playing reports whether a video is loaded.
func (b *VideoBackend) Playing() bool {
	return b.playing
}

// NotifyEnded is called by the host surface when the embedded player reaches
// the end of the current video.
func (b *VideoBackend) NotifyEnded() {
	b.playing = false
	if b.onEnd != nil {
		b.onEnd()
	}
}

// AudioBackend is the local-file backend. Like the video backend it records
// the current source for a host surface to play; uploaded files are served
// over HTTP by the server's uploads handler.
type AudioBackend struct {
	source  string
	playing bool
	onEnd   func()
}

// NewAudioBackend creates a local-file audio backend.
func NewAudioBackend() *AudioBackend {
	return &AudioBackend{}
}

// Play sets the source to the song's file URL. Remote songs are rejected.
func (b *AudioBackend) Play(song models.Song) error {
	if song.Kind != models.SongLocal {
		return fmt.Errorf("%w: audio backend cannot play %s songs", shared.ErrInvalidArgument, song.Kind)
	}
	if song.FileURL == "" {
		return fmt.Errorf("%w: song %s has no file url", shared.ErrInvalidArgument, song.ID)
	}

	b.source = song.FileURL
	b.playing = true
	return nil
}

// Stop clears the source.
func (b *AudioBackend) Stop() error {
	b.source = ""
	b.playing = false
	return nil
}

// Name returns "audio".
func (b *AudioBackend) Name() string {
	return "audio"
}

// OnEnd registers the controller's auto-advance callback.
func (b *AudioBackend) OnEnd(fn func()) {
	b.onEnd = fn
}

// Source returns the current file URL, empty when stopped.
func (b *AudioBackend) Source() string {
	return b.source
}

// Playing reports whether a source is loaded.
func (b *AudioBackend) Playing() bool {
	return b.playing
}

// NotifyEnded is called by the host surface when the audio element reaches
// the end of the current file.
func (b *AudioBackend) NotifyEnded() {
	b.playing = false
	if b.onEnd != nil {
		b.onEnd()
	}
}
