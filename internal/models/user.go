package models

import (
	"fmt"

	"github.com/mixtapehq/mixtape/internal/shared"
)

// User is an account record in the flat-file store.
//
// Password is an opaque hash string compared verbatim at login; the server
// never hashes or inspects it. The playlist collection is loaded wholesale,
// mutated in memory, and written back wholesale.
type User struct {
	Username  string     `json:"username"`
	Password  string     `json:"password,omitempty"`
	FirstName string     `json:"firstName"`
	ImgURL    string     `json:"imgUrl,omitempty"`
	Playlists []Playlist `json:"playlists"`
}

// Validate checks the fields required at registration time.
func (u User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("%w: username", shared.ErrMissingField)
	}
	if u.Password == "" {
		return fmt.Errorf("%w: password", shared.ErrMissingField)
	}
	return nil
}

// Sanitized returns a copy of the user with the password hash stripped,
// suitable for login responses and the session cache.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// FindPlaylist returns a pointer into the user's playlist collection, or nil.
func (u *User) FindPlaylist(name string) *Playlist {
	for i := range u.Playlists {
		if u.Playlists[i].Name == name {
			return &u.Playlists[i]
		}
	}
	return nil
}
