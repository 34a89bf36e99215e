package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/services"
	"github.com/mixtapehq/mixtape/internal/shared"
	tu "github.com/mixtapehq/mixtape/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Store.SessionFile = filepath.Join(t.TempDir(), "session.json")
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			youtube := &tu.MockSearchService{}
			api := &services.APIService{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				YouTube:    youtube,
				API:        api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.youtube != youtube {
				t.Error("expected youtube to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
			if runner.syncer == nil {
				t.Error("expected syncer to be created")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				HTTPClient: nil,
			})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("loadLibrary", func(t *testing.T) {
		t.Run("fetches collection from the server", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/playlists/carol" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode([]models.Playlist{
					{Name: "Chill", Songs: []models.Song{}},
				})
			}))
			defer srv.Close()

			runner := newTestRunner(t, srv.URL)

			lib, err := runner.loadLibrary(context.Background(), "carol")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			playlists := lib.Playlists()
			if len(playlists) != 1 || playlists[0].Name != "Chill" {
				t.Errorf("unexpected collection %+v", playlists)
			}
		})

		t.Run("requires a username", func(t *testing.T) {
			runner := newTestRunner(t, "http://localhost:1")

			_, err := runner.loadLibrary(context.Background(), "")
			if err == nil {
				t.Fatal("expected error for empty username")
			}
			if !strings.Contains(err.Error(), "--user is required") {
				t.Errorf("expected missing argument error, got %v", err)
			}
		})

		t.Run("reports unknown users", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer srv.Close()

			runner := newTestRunner(t, srv.URL)

			_, err := runner.loadLibrary(context.Background(), "nobody")
			if err == nil {
				t.Fatal("expected error for unknown user")
			}
			if !strings.Contains(err.Error(), "user not found") {
				t.Errorf("expected user not found error, got %v", err)
			}
		})
	})

	t.Run("saveLibrary", func(t *testing.T) {
		t.Run("pushes the collection back", func(t *testing.T) {
			var got struct {
				Username  string            `json:"username"`
				Playlists []models.Playlist `json:"playlists"`
			}
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodGet {
					w.Header().Set("Content-Type", "application/json")
					json.NewEncoder(w).Encode([]models.Playlist{{Name: "Chill"}})
					return
				}
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("failed to decode sync payload: %v", err)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success":true}`))
			}))
			defer srv.Close()

			runner := newTestRunner(t, srv.URL)

			lib, err := runner.loadLibrary(context.Background(), "carol")
			if err != nil {
				t.Fatalf("loadLibrary failed: %v", err)
			}
			if err := lib.CreatePlaylist("Workout"); err != nil {
				t.Fatalf("CreatePlaylist failed: %v", err)
			}

			if err := runner.saveLibrary(context.Background(), lib); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got.Username != "carol" {
				t.Errorf("expected sync for carol, got %q", got.Username)
			}
			if len(got.Playlists) != 2 {
				t.Errorf("expected both playlists to be pushed, got %d", len(got.Playlists))
			}
		})
	})
}

func newTestRunner(t *testing.T, serverURL string) *Runner {
	t.Helper()

	config := shared.DefaultConfig()
	config.Store.SessionFile = filepath.Join(t.TempDir(), "session.json")

	return NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(nil),
		Output: &bytes.Buffer{},
		API:    services.NewAPIService(serverURL, nil),
	})
}
