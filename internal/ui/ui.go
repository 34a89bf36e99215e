package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mixtapehq/mixtape/internal/library"
	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/player"
	"github.com/mixtapehq/mixtape/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	SongListView
	NowPlayingView
)

// sortModes cycles through the three view orderings with the sort key.
var sortModes = []library.SortMode{library.SortNone, library.SortTitle, library.SortRating}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	lib    *library.Library
	ctrl   *player.Controller
	syncer *tasks.Syncer

	view      ViewState
	width     int
	height    int
	sortIndex int

	playlistList list.Model
	songList     list.Model
	visible      []models.Song

	err    error
	notice string
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies. The
// syncer may be nil when running offline against the session cache only.
func NewModel(ctx context.Context, lib *library.Library, ctrl *player.Controller, syncer *tasks.Syncer) *Model {
	return &Model{
		ctx:    ctx,
		lib:    lib,
		ctrl:   ctrl,
		syncer: syncer,
		view:   PlaylistListView,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init fetches the playlist collection from the backing store, or renders
// the in-memory collection when no syncer is configured.
func (m *Model) Init() tea.Cmd {
	if m.syncer == nil {
		return func() tea.Msg {
			return collectionFetchedMsg(m.lib.Playlists(), nil)
		}
	}
	return m.fetchCollection()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.songList.Width() == 0 {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case SongListView:
			return m.handleSongListKeys(msg)
		case NowPlayingView:
			return m.handleNowPlayingKeys(msg)
		}

	case Msg:
		return m.handleAppMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleAppMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgCollectionFetched:
		data := msg.data.(struct {
			playlists []models.Playlist
			err       error
		})
		if data.err != nil {
			// Fetch failures degrade to the local collection.
			m.notice = fmt.Sprintf("offline: %v", data.err)
		}
		m.rebuildPlaylistList()
		return m, nil

	case MsgSynced:
		if err, ok := msg.data.(error); ok && err != nil {
			m.notice = fmt.Sprintf("sync failed: %v", err)
		} else {
			m.notice = ""
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case SongListView:
		return m.renderSongList()
	case NowPlayingView:
		return m.renderNowPlaying()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(playlistItem); ok {
				if err := m.lib.SelectPlaylist(item.playlist.Name); err == nil {
					m.sortIndex = 0
					m.rebuildSongList()
					m.view = SongListView
				}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.rebuildPlaylistList()
		m.view = PlaylistListView
		return m, nil
	case "o":
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		m.rebuildSongList()
		return m, nil
	case "p":
		if err := m.ctrl.PlayAll(m.visible); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.view = NowPlayingView
		return m, nil
	case "enter":
		selected := m.songList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(songItem); ok {
				if err := m.ctrl.PlayFrom(m.visible, item.song.ID); err != nil {
					m.notice = err.Error()
					return m, nil
				}
				m.view = NowPlayingView
			}
		}
		return m, nil
	case "1", "2", "3", "4", "5":
		return m, m.rateSelected(int(msg.String()[0] - '0'))
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleNowPlayingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.Stop(true)
		return m, tea.Quit
	case "esc":
		m.rebuildSongList()
		m.view = SongListView
		return m, nil
	case "n", "right":
		m.ctrl.Advance()
		return m, nil
	case "b", "left":
		m.ctrl.Retreat()
		return m, nil
	case "s":
		m.ctrl.Stop(true)
		m.rebuildSongList()
		m.view = SongListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

// rateSelected sets the rating on the highlighted song and pushes the
// mutated collection to the store in the background.
func (m *Model) rateSelected(rating int) tea.Cmd {
	selected := m.songList.SelectedItem()
	if selected == nil {
		return nil
	}
	item, ok := selected.(songItem)
	if !ok {
		return nil
	}

	if err := m.lib.RateSong(m.lib.CurrentName(), item.song.ID, rating); err != nil {
		m.notice = err.Error()
		return nil
	}
	m.rebuildSongList()

	if m.syncer == nil {
		return nil
	}
	return func() tea.Msg {
		return syncedMsg(m.syncer.Sync(m.ctx, m.lib.User()))
	}
}

func (m *Model) fetchCollection() tea.Cmd {
	return func() tea.Msg {
		err := m.syncer.Refresh(m.ctx, m.lib)
		return collectionFetchedMsg(m.lib.Playlists(), err)
	}
}

func (m *Model) rebuildPlaylistList() {
	playlists := m.lib.Playlists()
	items := make([]list.Item, len(playlists))
	for i, pl := range playlists {
		items[i] = playlistItem{playlist: pl}
	}
	m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.playlistList.Title = fmt.Sprintf("%s's Playlists", m.lib.User().FirstName)
	m.playlistList.SetSize(m.width-4, m.height-8)
}

func (m *Model) rebuildSongList() {
	visible, err := m.lib.View(m.lib.CurrentName(), "", sortModes[m.sortIndex])
	if err != nil {
		m.notice = err.Error()
		visible = nil
	}
	m.visible = visible

	items := make([]list.Item, len(visible))
	for i, song := range visible {
		items[i] = songItem{song: song}
	}
	m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.songList.Title = fmt.Sprintf("Songs in '%s'", m.lib.CurrentName())
	m.songList.SetSize(m.width-4, m.height-8)
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", m.playlistList.View(), m.renderNotice(), helpView)
}

func (m *Model) renderSongList() string {
	playKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play"))
	rateKey := key.NewBinding(key.WithKeys("1"), key.WithHelp("1-5", "rate"))
	helpKeys := []key.Binding{playKey, m.keys.playAll, m.keys.sort, rateKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", m.songList.View(), m.renderNotice(), helpView)
}

func (m *Model) renderNowPlaying() string {
	helpKeys := []key.Binding{m.keys.next, m.keys.prev, m.keys.stop, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	song, ok := m.ctrl.Current()
	if !ok {
		title := styles.title.Render("Playback stopped")
		return fmt.Sprintf("%s\n\n%s", title, helpView)
	}

	title := styles.title.Render("Now Playing")
	source := "YouTube"
	if song.Kind == models.SongLocal {
		source = "My Uploads"
	}
	info := fmt.Sprintf("%s\n%s • %s\n\nTrack %d of %d",
		styles.ok.Render(song.Title), song.Channel, source,
		m.ctrl.Cursor()+1, len(m.ctrl.Queue()))

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", title, info, m.renderNotice(), helpView)
}

func (m *Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	return styles.warn.Render(m.notice)
}
