package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/mixtapehq/mixtape/internal/models"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = songItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d songs", len(i.playlist.Songs))
}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	desc := i.song.Channel
	if i.song.Rated() {
		desc = fmt.Sprintf("%s • %s", desc, strings.Repeat("★", i.song.Rating))
	}
	return desc
}
