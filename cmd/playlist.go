package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mixtapehq/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistList prints the user's playlists and their songs.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.loadLibrary(ctx, cmd.String("user"))
	if err != nil {
		return err
	}

	playlists := lib.Playlists()

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists yet\n")
	}

	for _, playlist := range playlists {
		r.writePlain("%s (%d songs)\n", playlist.Name, len(playlist.Songs))
		for _, song := range playlist.Songs {
			rating := ""
			if song.Rated() {
				rating = fmt.Sprintf(" [%d/5]", song.Rating)
			}
			r.writePlain("  %s - %s%s\n", song.Title, song.Channel, rating)
		}
	}

	return nil
}

// PlaylistCreate creates an empty playlist and syncs the collection.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	lib, err := r.loadLibrary(ctx, cmd.String("user"))
	if err != nil {
		return err
	}

	if err := lib.CreatePlaylist(name); err != nil {
		return err
	}
	if err := r.saveLibrary(ctx, lib); err != nil {
		return err
	}

	return r.writePlain("✓ Created playlist %q\n", name)
}

// PlaylistDelete removes a playlist and syncs the collection.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	lib, err := r.loadLibrary(ctx, cmd.String("user"))
	if err != nil {
		return err
	}

	if err := lib.DeletePlaylist(name); err != nil {
		return err
	}
	if err := r.saveLibrary(ctx, lib); err != nil {
		return err
	}

	return r.writePlain("✓ Deleted playlist %q\n", name)
}

// PlaylistAdd looks a video up through the provider and appends it.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	videoID := cmd.StringArg("video")
	if name == "" || videoID == "" {
		return fmt.Errorf("%w: playlist name and video id", shared.ErrMissingArgument)
	}

	lib, err := r.loadLibrary(ctx, cmd.String("user"))
	if err != nil {
		return err
	}

	videos, err := r.youtube.Videos(ctx, []string{videoID})
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if len(videos) == 0 {
		return fmt.Errorf("%w: video %s", shared.ErrSongNotFound, videoID)
	}

	if err := lib.AddSong(name, videos[0].Song()); err != nil {
		return err
	}
	if err := r.saveLibrary(ctx, lib); err != nil {
		return err
	}

	return r.writePlain("✓ Added %q to %q\n", videos[0].Title, name)
}

// PlaylistRemove drops a song by id. Removing an absent id is a no-op.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	id := cmd.StringArg("id")
	if name == "" || id == "" {
		return fmt.Errorf("%w: playlist name and song id", shared.ErrMissingArgument)
	}

	lib, err := r.loadLibrary(ctx, cmd.String("user"))
	if err != nil {
		return err
	}

	if err := lib.RemoveSong(name, id); err != nil {
		return err
	}
	if err := r.saveLibrary(ctx, lib); err != nil {
		return err
	}

	return r.writePlain("✓ Removed %s from %q\n", id, name)
}

// PlaylistRate sets a 1-5 rating on a song.
func (r *Runner) PlaylistRate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	id := cmd.StringArg("id")
	ratingArg := cmd.StringArg("rating")
	if name == "" || id == "" || ratingArg == "" {
		return fmt.Errorf("%w: playlist name, song id and rating", shared.ErrMissingArgument)
	}

	rating, err := strconv.Atoi(ratingArg)
	if err != nil {
		return fmt.Errorf("%w: rating must be a number", shared.ErrInvalidArgument)
	}

	lib, err := r.loadLibrary(ctx, cmd.String("user"))
	if err != nil {
		return err
	}

	if err := lib.RateSong(name, id, rating); err != nil {
		return err
	}
	if err := r.saveLibrary(ctx, lib); err != nil {
		return err
	}

	return r.writePlain("✓ Rated %s %d/5\n", id, rating)
}
