package player

import (
	"errors"
	"io"
	"testing"

	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/shared"
)

func newTestController() (*Controller, *AudioBackend, *VideoBackend) {
	audio := NewAudioBackend()
	video := NewVideoBackend()
	logger := shared.NewLogger(io.Discard)
	return NewController(audio, video, logger), audio, video
}

func remoteSong(id, title string) models.Song {
	return models.NewRemoteSong(id, title, "Test Channel", "http://img/"+id+".jpg")
}

func localSong(title string) models.Song {
	return models.NewLocalSong("/uploads/"+title+".mp3", title)
}

func TestController(t *testing.T) {
	t.Run("PlayAll", func(t *testing.T) {
		t.Run("starts at the first song", func(t *testing.T) {
			ctrl, _, video := newTestController()
			songs := []models.Song{remoteSong("a", "A"), remoteSong("b", "B")}

			if err := ctrl.PlayAll(songs); err != nil {
				t.Fatalf("play all failed: %v", err)
			}

			if ctrl.State() != StatePlaying {
				t.Errorf("expected playing, got %s", ctrl.State())
			}
			if ctrl.Cursor() != 0 {
				t.Errorf("expected cursor 0, got %d", ctrl.Cursor())
			}
			if video.CurrentVideoID() != "a" {
				t.Errorf("expected video 'a' loaded, got %q", video.CurrentVideoID())
			}
		})

		t.Run("empty list fails without state change", func(t *testing.T) {
			ctrl, _, _ := newTestController()

			if err := ctrl.PlayAll(nil); !errors.Is(err, shared.ErrEmptyQueue) {
				t.Fatalf("expected empty queue error, got %v", err)
			}
			if ctrl.State() != StateIdle {
				t.Errorf("expected idle after failed play, got %s", ctrl.State())
			}
			if len(ctrl.Queue()) != 0 {
				t.Errorf("expected no queue, got %d entries", len(ctrl.Queue()))
			}
		})

		t.Run("snapshots the visible list", func(t *testing.T) {
			ctrl, _, _ := newTestController()
			songs := []models.Song{remoteSong("a", "A")}

			if err := ctrl.PlayAll(songs); err != nil {
				t.Fatalf("play all failed: %v", err)
			}

			songs[0].Title = "mutated"
			if ctrl.Queue()[0].Title != "A" {
				t.Error("expected queue to be a snapshot, saw caller mutation")
			}
		})
	})

	t.Run("PlayFrom", func(t *testing.T) {
		t.Run("walks B then C then stops", func(t *testing.T) {
			ctrl, _, _ := newTestController()
			songs := []models.Song{remoteSong("a", "A"), remoteSong("b", "B"), remoteSong("c", "C")}

			if err := ctrl.PlayFrom(songs, "b"); err != nil {
				t.Fatalf("play from failed: %v", err)
			}
			if ctrl.Cursor() != 1 {
				t.Fatalf("expected cursor 1, got %d", ctrl.Cursor())
			}

			if err := ctrl.Advance(); err != nil {
				t.Fatalf("advance failed: %v", err)
			}
			if current, ok := ctrl.Current(); !ok || current.ID != "c" {
				t.Errorf("expected current song c, got %+v", current)
			}

			if err := ctrl.Advance(); err != nil {
				t.Fatalf("advance past end failed: %v", err)
			}
			if ctrl.State() != StateStopped {
				t.Errorf("expected stopped past the end, got %s", ctrl.State())
			}
		})

		t.Run("unknown id", func(t *testing.T) {
			ctrl, _, _ := newTestController()
			songs := []models.Song{remoteSong("a", "A")}

			if err := ctrl.PlayFrom(songs, "zzz"); !errors.Is(err, shared.ErrSongNotFound) {
				t.Errorf("expected song not found, got %v", err)
			}
		})
	})

	t.Run("Retreat", func(t *testing.T) {
		t.Run("clamps at the first song", func(t *testing.T) {
			ctrl, _, video := newTestController()
			songs := []models.Song{remoteSong("a", "A"), remoteSong("b", "B")}

			if err := ctrl.PlayAll(songs); err != nil {
				t.Fatalf("play all failed: %v", err)
			}

			// Retreating at index zero replays the first song.
			if err := ctrl.Retreat(); err != nil {
				t.Fatalf("retreat failed: %v", err)
			}
			if ctrl.Cursor() != 0 {
				t.Errorf("expected cursor clamped to 0, got %d", ctrl.Cursor())
			}
			if video.CurrentVideoID() != "a" {
				t.Errorf("expected first song replayed, got %q", video.CurrentVideoID())
			}
			if ctrl.State() != StatePlaying {
				t.Errorf("expected playing, got %s", ctrl.State())
			}
		})

		t.Run("steps back one entry", func(t *testing.T) {
			ctrl, _, video := newTestController()
			songs := []models.Song{remoteSong("a", "A"), remoteSong("b", "B")}

			if err := ctrl.PlayFrom(songs, "b"); err != nil {
				t.Fatalf("play from failed: %v", err)
			}
			if err := ctrl.Retreat(); err != nil {
				t.Fatalf("retreat failed: %v", err)
			}
			if video.CurrentVideoID() != "a" {
				t.Errorf("expected video 'a', got %q", video.CurrentVideoID())
			}
		})
	})

	t.Run("Dispatch", func(t *testing.T) {
		t.Run("routes by song kind", func(t *testing.T) {
			ctrl, audio, video := newTestController()
			local := localSong("demo")
			songs := []models.Song{remoteSong("a", "A"), local}

			if err := ctrl.PlayAll(songs); err != nil {
				t.Fatalf("play all failed: %v", err)
			}
			if !video.Playing() {
				t.Error("expected video backend active for remote song")
			}

			if err := ctrl.Advance(); err != nil {
				t.Fatalf("advance failed: %v", err)
			}
			if !audio.Playing() {
				t.Error("expected audio backend active for local song")
			}
			if video.Playing() {
				t.Error("expected video backend released after switch")
			}
			if audio.Source() != local.FileURL {
				t.Errorf("expected source %q, got %q", local.FileURL, audio.Source())
			}
		})
	})

	t.Run("Stop", func(t *testing.T) {
		t.Run("partial stop keeps queue", func(t *testing.T) {
			ctrl, _, video := newTestController()
			if err := ctrl.PlayAll([]models.Song{remoteSong("a", "A")}); err != nil {
				t.Fatalf("play all failed: %v", err)
			}

			if err := ctrl.Stop(false); err != nil {
				t.Fatalf("stop failed: %v", err)
			}
			if ctrl.State() != StateStopped {
				t.Errorf("expected stopped, got %s", ctrl.State())
			}
			if len(ctrl.Queue()) != 1 {
				t.Error("expected queue retained on partial stop")
			}
			if video.Playing() {
				t.Error("expected video backend halted")
			}
		})

		t.Run("full stop clears queue", func(t *testing.T) {
			ctrl, _, _ := newTestController()
			if err := ctrl.PlayAll([]models.Song{remoteSong("a", "A")}); err != nil {
				t.Fatalf("play all failed: %v", err)
			}

			if err := ctrl.Stop(true); err != nil {
				t.Fatalf("stop failed: %v", err)
			}
			if ctrl.State() != StateIdle {
				t.Errorf("expected idle, got %s", ctrl.State())
			}
			if len(ctrl.Queue()) != 0 {
				t.Error("expected queue cleared on full stop")
			}
		})
	})

	t.Run("auto-advance", func(t *testing.T) {
		ctrl, _, video := newTestController()
		songs := []models.Song{remoteSong("a", "A"), remoteSong("b", "B")}

		if err := ctrl.PlayAll(songs); err != nil {
			t.Fatalf("play all failed: %v", err)
		}

		video.NotifyEnded()
		if current, ok := ctrl.Current(); !ok || current.ID != "b" {
			t.Errorf("expected auto-advance to b, got %+v", current)
		}

		video.NotifyEnded()
		if ctrl.State() != StateStopped {
			t.Errorf("expected stopped after last song ended, got %s", ctrl.State())
		}
	})
}

func TestBackends(t *testing.T) {
	t.Run("video rejects local songs", func(t *testing.T) {
		video := NewVideoBackend()
		if err := video.Play(localSong("demo")); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected invalid argument, got %v", err)
		}
	})

	t.Run("audio rejects remote songs", func(t *testing.T) {
		audio := NewAudioBackend()
		if err := audio.Play(remoteSong("a", "A")); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected invalid argument, got %v", err)
		}
	})

	t.Run("audio rejects missing file url", func(t *testing.T) {
		audio := NewAudioBackend()
		song := localSong("demo")
		song.FileURL = ""
		if err := audio.Play(song); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected invalid argument, got %v", err)
		}
	})
}
