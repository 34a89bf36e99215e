package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mixtapehq/mixtape/internal/models"
	th "github.com/mixtapehq/mixtape/internal/testing"
)

func testPlaylist() models.Playlist {
	one := models.NewRemoteSong("vid1", "Song One", "Channel One", "http://img/1.jpg")
	one.Rating = 5
	two := models.NewLocalSong("/uploads/123-two.mp3", "Song Two")

	return models.Playlist{
		Name:  "Road Trip",
		Songs: []models.Song{one, two},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testPlaylist())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Kind,Title,Channel,Rating,FileURL") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "vid1") {
			t.Errorf("CSV missing remote song id")
		}
		if !strings.Contains(output, "Song One") {
			t.Errorf("CSV missing song title")
		}
		if !strings.Contains(output, "/uploads/123-two.mp3") {
			t.Errorf("CSV missing local file url")
		}
		if !strings.Contains(output, ",5,") {
			t.Errorf("CSV missing rating column value")
		}

		// Unrated songs leave the rating cell empty.
		if !strings.Contains(output, "local,Song Two,My Uploads,,") {
			t.Errorf("unexpected local song row, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testPlaylist())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Road Trip") {
			t.Errorf("Markdown missing title heading")
		}
		if !strings.Contains(output, "**Songs**: 2") {
			t.Errorf("Markdown missing song count")
		}
		if !strings.Contains(output, "1. Song One - Channel One [★★★★★]") {
			t.Errorf("Markdown missing rated song line, got: %s", output)
		}
		if !strings.Contains(output, "[-]") {
			t.Errorf("Markdown missing unrated marker")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testPlaylist())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Playlist: Road Trip") {
			t.Errorf("text missing playlist name")
		}
		if !strings.Contains(output, "Songs: 2") {
			t.Errorf("text missing song count")
		}
		if !strings.Contains(output, "1. Channel One - Song One") {
			t.Errorf("text missing song line, got: %s", output)
		}
	})

	t.Run("empty playlist", func(t *testing.T) {
		playlist := models.Playlist{Name: "Empty", Songs: []models.Song{}}

		data, err := ExportToCSV(playlist)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if lines := strings.Count(strings.TrimSpace(string(data)), "\n"); lines != 0 {
			t.Errorf("expected header-only CSV, got: %s", data)
		}
	})
}

func TestWriteCSVExport(t *testing.T) {
	t.Run("writes songs and metadata files", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "roadtrip")

		result, err := WriteCSVExport(testPlaylist(), base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		th.AssertFileExists(t, result.SongsFile)
		th.AssertFileExists(t, result.MetadataFile)

		metadata, err := os.ReadFile(result.MetadataFile)
		if err != nil {
			t.Fatalf("failed to read metadata: %v", err)
		}
		if !strings.Contains(string(metadata), `"name": "Road Trip"`) {
			t.Errorf("unexpected metadata: %s", metadata)
		}
	})

	t.Run("defaults base path to playlist name", func(t *testing.T) {
		wd := th.MustGetwd(t)
		th.MustChdir(t, t.TempDir())
		defer th.MustChdir(t, wd)

		result, err := WriteCSVExport(testPlaylist(), "")
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		if result.SongsFile != "Road Trip_songs.csv" {
			t.Errorf("unexpected songs file %q", result.SongsFile)
		}
	})
}
