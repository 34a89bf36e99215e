package player

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// State is the controller's playback state.
type State int

const (
	// StateIdle means no playback has been requested yet, or a full stop
	// cleared the queue.
	StateIdle State = iota

	// StatePlaying means a queue is loaded and a backend is active.
	StatePlaying

	// StateStopped means the queue ran out or playback was halted; the
	// queue is retained so Retreat/PlayAll can resume from it.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Controller steps a cursor through a snapshot of songs, handing each one to
// the backend matching its kind. Exactly one backend is active at a time.
//
// Single writer: all methods are expected to be called from one goroutine
// (the user-driven event loop), so there is no internal locking.
type Controller struct {
	audio  Backend
	video  Backend
	active Backend

	queue  []models.Song
	cursor int
	state  State

	logger *log.Logger
}

// NewController creates a playback controller over the given backends.
//
// Backends implementing [EndNotifier] are wired for auto-advance.
func NewController(audio, video Backend, logger *log.Logger) *Controller {
	if logger == nil {
		logger = shared.NewLogger(os.Stderr)
	}

	c := &Controller{
		audio:  audio,
		video:  video,
		state:  StateIdle,
		logger: logger.With("component", "player"),
	}

	for _, b := range []Backend{audio, video} {
		if notifier, ok := b.(EndNotifier); ok {
			notifier.OnEnd(c.handleMediaEnd)
		}
	}

	return c
}

// State returns the current playback state.
func (c *Controller) State() State {
	return c.state
}

// Current returns the song at the cursor, or false when nothing is queued.
func (c *Controller) Current() (models.Song, bool) {
	if c.state != StatePlaying || c.cursor >= len(c.queue) {
		return models.Song{}, false
	}
	return c.queue[c.cursor], true
}

// Queue returns the queued snapshot. Callers must not mutate it.
func (c *Controller) Queue() []models.Song {
	return c.queue
}

// Cursor returns the index of the current queue entry.
func (c *Controller) Cursor() int {
	return c.cursor
}

// PlayAll snapshots the visible list into the queue and starts playback from
// the first entry. An empty list fails with ErrEmptyQueue and leaves the
// controller's state untouched.
func (c *Controller) PlayAll(visible []models.Song) error {
	return c.playAt(visible, 0)
}

// PlayFrom behaves like PlayAll but starts at the song with the given id.
func (c *Controller) PlayFrom(visible []models.Song, id string) error {
	for i, song := range visible {
		if song.ID == id {
			return c.playAt(visible, i)
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
}

func (c *Controller) playAt(visible []models.Song, cursor int) error {
	if len(visible) == 0 {
		return shared.ErrEmptyQueue
	}

	queue := make([]models.Song, len(visible))
	copy(queue, visible)

	c.queue = queue
	c.cursor = cursor
	c.state = StatePlaying

	return c.Dispatch(c.queue[c.cursor])
}

// Advance moves the cursor forward. Past the end of the queue the controller
// transitions to Stopped and releases the active backend.
func (c *Controller) Advance() error {
	if len(c.queue) == 0 {
		return shared.ErrEmptyQueue
	}

	c.cursor++
	if c.cursor >= len(c.queue) {
		c.cursor = len(c.queue)
		c.logger.Debug("queue exhausted", "length", len(c.queue))
		return c.Stop(false)
	}

	return c.Dispatch(c.queue[c.cursor])
}

// Retreat moves the cursor back, clamping at the first entry. Retreating at
// index zero replays the first song instead of stopping; the asymmetry with
// Advance is intentional.
func (c *Controller) Retreat() error {
	if len(c.queue) == 0 {
		return shared.ErrEmptyQueue
	}

	c.cursor--
	if c.cursor < 0 {
		c.cursor = 0
	}
	if c.state != StatePlaying {
		c.state = StatePlaying
	}

	return c.Dispatch(c.queue[c.cursor])
}

// Dispatch hands a song to the backend matching its kind. Local songs go to
// the audio backend, remote songs to the video backend. Switching backends
// stops the previously active one first.
func (c *Controller) Dispatch(song models.Song) error {
	target := c.video
	if song.Kind == models.SongLocal {
		target = c.audio
	}

	if c.active != nil && c.active != target {
		if err := c.active.Stop(); err != nil {
			c.logger.Warn("failed to release backend", "backend", c.active.Name(), "error", err)
		}
	}
	c.active = target

	c.logger.Debug("dispatching", "song", song.Title, "backend", target.Name())

	if err := target.Play(song); err != nil {
		return fmt.Errorf("playback via %s failed: %w", target.Name(), err)
	}

	c.state = StatePlaying
	return nil
}

// Stop halts the active backend. The queue is cleared only on a full stop;
// otherwise it is retained so playback can resume.
func (c *Controller) Stop(full bool) error {
	if c.active != nil {
		if err := c.active.Stop(); err != nil {
			c.logger.Warn("failed to stop backend", "backend", c.active.Name(), "error", err)
		}
		c.active = nil
	}

	if full {
		c.queue = nil
		c.cursor = 0
		c.state = StateIdle
		return nil
	}

	c.state = StateStopped
	return nil
}

// handleMediaEnd is installed on backends that report natural end of media.
func (c *Controller) handleMediaEnd() {
	if c.state != StatePlaying {
		return
	}
	if err := c.Advance(); err != nil {
		c.logger.Warn("auto-advance failed", "error", err)
	}
}
