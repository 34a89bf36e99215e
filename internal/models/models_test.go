package models

import (
	"errors"
	"testing"

	"github.com/mixtapehq/mixtape/internal/shared"
)

func TestSong(t *testing.T) {
	t.Run("NewRemoteSong", func(t *testing.T) {
		song := NewRemoteSong("dQw4w9WgXcQ", "Never Gonna Give You Up", "Rick Astley", "http://img.example/thumb.jpg")

		if song.ID != "dQw4w9WgXcQ" {
			t.Errorf("expected id dQw4w9WgXcQ, got %s", song.ID)
		}
		if song.Kind != SongRemote {
			t.Errorf("expected remote kind, got %s", song.Kind)
		}
		if err := song.Validate(); err != nil {
			t.Errorf("expected valid song, got %v", err)
		}
	})

	t.Run("NewLocalSong", func(t *testing.T) {
		song := NewLocalSong("http://localhost:3000/uploads/track.mp3", "My Track")

		if song.ID == "" {
			t.Error("expected a generated id")
		}
		if song.Kind != SongLocal {
			t.Errorf("expected local kind, got %s", song.Kind)
		}
		if song.Channel != "My Uploads" {
			t.Errorf("expected channel My Uploads, got %s", song.Channel)
		}
		if err := song.Validate(); err != nil {
			t.Errorf("expected valid song, got %v", err)
		}
	})

	t.Run("local songs get unique ids", func(t *testing.T) {
		a := NewLocalSong("http://x/a.mp3", "A")
		b := NewLocalSong("http://x/b.mp3", "B")
		if a.ID == b.ID {
			t.Error("expected distinct generated ids")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name string
			song Song
			want error
		}{
			{name: "missing id", song: Song{Kind: SongRemote, Title: "x"}, want: shared.ErrMissingField},
			{name: "missing title", song: Song{ID: "a", Kind: SongRemote}, want: shared.ErrMissingField},
			{name: "unknown kind", song: Song{ID: "a", Kind: "stream", Title: "x"}, want: shared.ErrInvalidArgument},
			{name: "local without file url", song: Song{ID: "a", Kind: SongLocal, Title: "x"}, want: shared.ErrMissingField},
			{name: "rating out of range", song: Song{ID: "a", Kind: SongRemote, Title: "x", Rating: 6}, want: shared.ErrInvalidRating},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if err := tt.song.Validate(); !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("Rated", func(t *testing.T) {
		if (Song{Rating: 0}).Rated() {
			t.Error("rating 0 should read as unrated")
		}
		if !(Song{Rating: 3}).Rated() {
			t.Error("rating 3 should read as rated")
		}
	})
}

func TestPlaylist(t *testing.T) {
	playlist := Playlist{
		Name: "Road Trip",
		Songs: []Song{
			NewRemoteSong("vid1", "First", "Ch", ""),
			NewRemoteSong("vid2", "Second", "Ch", ""),
		},
	}

	t.Run("FindSong", func(t *testing.T) {
		song, ok := playlist.FindSong("vid2")
		if !ok {
			t.Fatal("expected to find vid2")
		}
		if song.Title != "Second" {
			t.Errorf("expected title Second, got %s", song.Title)
		}

		if _, ok := playlist.FindSong("missing"); ok {
			t.Error("expected missing id to not be found")
		}
	})

	t.Run("ContainsSong", func(t *testing.T) {
		if !playlist.ContainsSong("vid1") {
			t.Error("expected playlist to contain vid1")
		}
		if playlist.ContainsSong("vid3") {
			t.Error("expected playlist to not contain vid3")
		}
	})
}

func TestUser(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		user := User{Username: "maya", Password: "a1b2c3"}
		if err := user.Validate(); err != nil {
			t.Errorf("expected valid user, got %v", err)
		}

		if err := (User{Password: "x"}).Validate(); !errors.Is(err, shared.ErrMissingField) {
			t.Errorf("expected missing field error, got %v", err)
		}
		if err := (User{Username: "maya"}).Validate(); !errors.Is(err, shared.ErrMissingField) {
			t.Errorf("expected missing field error, got %v", err)
		}
	})

	t.Run("Sanitized strips password", func(t *testing.T) {
		user := User{Username: "maya", Password: "secret-hash", FirstName: "Maya"}
		clean := user.Sanitized()

		if clean.Password != "" {
			t.Error("expected password to be stripped")
		}
		if user.Password != "secret-hash" {
			t.Error("original user should be unchanged")
		}
	})

	t.Run("FindPlaylist returns mutable pointer", func(t *testing.T) {
		user := User{Username: "maya", Playlists: []Playlist{{Name: "Chill"}}}

		pl := user.FindPlaylist("Chill")
		if pl == nil {
			t.Fatal("expected playlist to be found")
		}

		pl.Songs = append(pl.Songs, NewRemoteSong("vid1", "Song", "Ch", ""))
		if len(user.Playlists[0].Songs) != 1 {
			t.Error("mutation through pointer should reach the collection")
		}

		if user.FindPlaylist("missing") != nil {
			t.Error("expected nil for unknown playlist")
		}
	})
}

func TestPersistedVideo(t *testing.T) {
	video := Video{VideoID: "vid1", Title: "Song", Channel: "Ch", ThumbnailURL: "http://img"}

	t.Run("NewPersistedVideo", func(t *testing.T) {
		pv := NewPersistedVideo(1, video)

		if pv.VideoID() != "vid1" {
			t.Errorf("expected video id vid1, got %s", pv.VideoID())
		}
		if pv.CreatedAt().IsZero() {
			t.Error("expected created at to be set")
		}
		if err := pv.Validate(); err != nil {
			t.Errorf("expected valid record, got %v", err)
		}
	})

	t.Run("Validate rejects empty fields", func(t *testing.T) {
		if err := NewPersistedVideo(1, Video{Title: "x"}).Validate(); !errors.Is(err, shared.ErrMissingField) {
			t.Errorf("expected missing field error, got %v", err)
		}
		if err := NewPersistedVideo(1, Video{VideoID: "x"}).Validate(); !errors.Is(err, shared.ErrMissingField) {
			t.Errorf("expected missing field error, got %v", err)
		}
	})

	t.Run("Song conversion", func(t *testing.T) {
		song := video.Song()
		if song.ID != "vid1" || song.Kind != SongRemote {
			t.Errorf("unexpected song %+v", song)
		}
	})
}
