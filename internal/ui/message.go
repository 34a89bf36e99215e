package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mixtapehq/mixtape/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCollectionFetched MsgKind = iota
	MsgSynced
)

// collectionFetchedMsg is the constructor for [MsgCollectionFetched]
func collectionFetchedMsg(playlists []models.Playlist, err error) Msg {
	return Msg{
		kind: MsgCollectionFetched,
		data: struct {
			playlists []models.Playlist
			err       error
		}{playlists, err},
	}
}

// syncedMsg is the constructor for [MsgSynced]
func syncedMsg(err error) Msg {
	return Msg{kind: MsgSynced, data: err}
}
