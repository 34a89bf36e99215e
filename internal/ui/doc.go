// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing and playing playlists:
//  1. [PlaylistListView] : Browse the signed-in user's playlists
//  2. [SongListView] : Step through a playlist's songs with sorting and 1-5 rating keys
//  3. [NowPlayingView] : Drive the playback controller (next, previous, stop)
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Rating a song mutates the in-memory library and pushes the whole collection through the sync layer in the background.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
