package library

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// SortMode selects the ordering applied by FilterAndSort.
type SortMode string

const (
	// SortNone keeps insertion order.
	SortNone SortMode = ""
	// SortTitle orders lexicographically by title.
	SortTitle SortMode = "name"
	// SortRating orders by rating, highest first.
	SortRating SortMode = "rating"
)

// ParseSortMode maps a user-supplied string onto a SortMode.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortNone, SortTitle, SortRating:
		return SortMode(s), nil
	default:
		return SortNone, fmt.Errorf("%w: sort mode %q", shared.ErrInvalidArgument, s)
	}
}

// FilterAndSort returns a lazy, restartable view over the named playlist.
//
// Filtering is a case-insensitive substring match on the title; an empty
// filter matches every song. Sorting is stable: title sort is lexicographic
// ascending, rating sort is descending with ties keeping their prior
// relative order. The underlying playlist is never mutated; each restart of
// the sequence re-reads the current playlist state.
func (l *Library) FilterAndSort(playlistName, filterText string, mode SortMode) (iter.Seq[models.Song], error) {
	if l.user.FindPlaylist(playlistName) == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistName)
	}

	return func(yield func(models.Song) bool) {
		pl := l.user.FindPlaylist(playlistName)
		if pl == nil {
			return
		}
		for _, song := range project(pl.Songs, filterText, mode) {
			if !yield(song) {
				return
			}
		}
	}, nil
}

// View materializes FilterAndSort into a slice, the shape the player
// controller snapshots its queue from.
func (l *Library) View(playlistName, filterText string, mode SortMode) ([]models.Song, error) {
	seq, err := l.FilterAndSort(playlistName, filterText, mode)
	if err != nil {
		return nil, err
	}

	var songs []models.Song
	for song := range seq {
		songs = append(songs, song)
	}
	return songs, nil
}

// project copies, filters, and stable-sorts a song list.
func project(songs []models.Song, filterText string, mode SortMode) []models.Song {
	out := make([]models.Song, 0, len(songs))

	if filterText == "" {
		out = append(out, songs...)
	} else {
		needle := strings.ToLower(filterText)
		for _, s := range songs {
			if strings.Contains(strings.ToLower(s.Title), needle) {
				out = append(out, s)
			}
		}
	}

	switch mode {
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Title < out[j].Title
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	}

	return out
}
