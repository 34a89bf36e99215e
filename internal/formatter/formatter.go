// package formatter provides functions to export playlist data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/mixtapehq/mixtape/internal/models"
)

// ratingString renders a 1..5 rating as stars, or a dash when unrated.
func ratingString(rating int) string {
	if rating < 1 || rating > 5 {
		return "-"
	}
	out := ""
	for i := 0; i < rating; i++ {
		out += "★"
	}
	return out
}

// ExportToCSV converts a playlist to CSV format with columns: ID, Kind, Title, Channel, Rating, FileURL
func ExportToCSV(playlist models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Kind", "Title", "Channel", "Rating", "FileURL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range playlist.Songs {
		rating := ""
		if song.Rated() {
			rating = strconv.Itoa(song.Rating)
		}
		record := []string{
			song.ID,
			string(song.Kind),
			song.Title,
			song.Channel,
			rating,
			song.FileURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to Markdown format
func ExportToMarkdown(playlist models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(playlist.Songs)))

	buf.WriteString("## Songs\n\n")
	for i, song := range playlist.Songs {
		channelPart := ""
		if song.Channel != "" {
			channelPart = fmt.Sprintf(" - %s", song.Channel)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s [%s]\n", i+1, song.Title, channelPart, ratingString(song.Rating)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to plain text format
func ExportToText(playlist models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", playlist.Name))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(playlist.Songs)))

	for i, song := range playlist.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Channel, song.Title))
	}

	return buf.Bytes(), nil
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	SongsFile    string
	MetadataFile string
}

// WriteCSVExport exports a playlist to CSV with an accompanying metadata JSON file.
//
// Defaults to the playlist name as the base filename & creates {base}_songs.csv and {base}_metadata.json
func WriteCSVExport(playlist models.Playlist, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = playlist.Name
	}

	csvData, err := ExportToCSV(playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	songsFile := baseFilepath + "_songs.csv"
	if err := os.WriteFile(songsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadata := struct {
		Name  string `json:"name"`
		Songs int    `json:"songs"`
	}{Name: playlist.Name, Songs: len(playlist.Songs)}

	metadataData, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{SongsFile: songsFile, MetadataFile: metadataFile}, nil
}
