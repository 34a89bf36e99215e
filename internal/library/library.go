package library

import (
	"fmt"
	"strings"

	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// Library owns a user's playlist collection and the current selection.
type Library struct {
	user    *models.User
	current string
}

// New creates a Library over the given user. The first playlist, if any,
// becomes the current selection.
func New(user *models.User) *Library {
	l := &Library{user: user}
	if len(user.Playlists) > 0 {
		l.current = user.Playlists[0].Name
	}
	return l
}

// User returns the underlying user record.
func (l *Library) User() *models.User {
	return l.user
}

// Playlists returns the user's playlist collection in insertion order.
func (l *Library) Playlists() []models.Playlist {
	return l.user.Playlists
}

// CurrentName returns the name of the current playlist, or "" when nothing
// is selected.
func (l *Library) CurrentName() string {
	return l.current
}

// Current returns the current playlist and whether a selection exists.
func (l *Library) Current() (models.Playlist, bool) {
	if l.current == "" {
		return models.Playlist{}, false
	}
	pl := l.user.FindPlaylist(l.current)
	if pl == nil {
		return models.Playlist{}, false
	}
	return *pl, true
}

// SelectPlaylist makes the named playlist current.
func (l *Library) SelectPlaylist(name string) error {
	if l.user.FindPlaylist(name) == nil {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
	}
	l.current = name
	return nil
}

// SetCollection replaces the playlist collection wholesale, as after a fetch
// from the backing store. The current selection is kept when it survives the
// replacement, otherwise it falls back to the first playlist.
func (l *Library) SetCollection(playlists []models.Playlist) {
	l.user.Playlists = playlists
	if l.user.FindPlaylist(l.current) != nil {
		return
	}
	if len(playlists) > 0 {
		l.current = playlists[0].Name
	} else {
		l.current = ""
	}
}

// CreatePlaylist appends an empty playlist with the given name and makes it
// current. Names are unique within the collection.
func (l *Library) CreatePlaylist(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.ErrEmptyName
	}
	if l.user.FindPlaylist(name) != nil {
		return fmt.Errorf("%w: %s", shared.ErrDuplicatePlaylist, name)
	}

	l.user.Playlists = append(l.user.Playlists, models.Playlist{Name: name, Songs: []models.Song{}})
	l.current = name
	return nil
}

// DeletePlaylist removes the named playlist. When it was current, the first
// remaining playlist becomes current, or the selection is cleared.
func (l *Library) DeletePlaylist(name string) error {
	idx := -1
	for i := range l.user.Playlists {
		if l.user.Playlists[i].Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
	}

	l.user.Playlists = append(l.user.Playlists[:idx], l.user.Playlists[idx+1:]...)

	if l.current == name {
		if len(l.user.Playlists) > 0 {
			l.current = l.user.Playlists[0].Name
		} else {
			l.current = ""
		}
	}
	return nil
}

// AddSong appends the song unless one with the same identifier is already
// present; re-adding an existing identifier is a no-op, not an error.
func (l *Library) AddSong(playlistName string, song models.Song) error {
	pl := l.user.FindPlaylist(playlistName)
	if pl == nil {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistName)
	}
	if err := song.Validate(); err != nil {
		return err
	}
	if pl.ContainsSong(song.ID) {
		return nil
	}

	pl.Songs = append(pl.Songs, song)
	return nil
}

// RemoveSong removes the song with the matching identifier; absence is a no-op.
func (l *Library) RemoveSong(playlistName, id string) error {
	pl := l.user.FindPlaylist(playlistName)
	if pl == nil {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistName)
	}

	for i := range pl.Songs {
		if pl.Songs[i].ID == id {
			pl.Songs = append(pl.Songs[:i], pl.Songs[i+1:]...)
			return nil
		}
	}
	return nil
}

// RateSong sets the rating for the song with the matching identifier.
// Ratings are integers 1 through 5.
func (l *Library) RateSong(playlistName, id string, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: got %d", shared.ErrInvalidRating, rating)
	}

	pl := l.user.FindPlaylist(playlistName)
	if pl == nil {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistName)
	}

	for i := range pl.Songs {
		if pl.Songs[i].ID == id {
			pl.Songs[i].Rating = rating
			return nil
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
}
