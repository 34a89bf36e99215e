package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIService(t *testing.T) {
	t.Run("NewAPIService", func(t *testing.T) {
		t.Run("defaults", func(t *testing.T) {
			svc := NewAPIService("", nil)
			if svc.BaseURL() != "http://localhost:3000" {
				t.Errorf("expected default base URL, got %s", svc.BaseURL())
			}
		})

		t.Run("custom base URL", func(t *testing.T) {
			svc := NewAPIService("http://example.com:8080", nil)
			if svc.BaseURL() != "http://example.com:8080" {
				t.Errorf("unexpected base URL %s", svc.BaseURL())
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("expected GET, got %s", r.Method)
			}
			if r.URL.Path != "/api/playlists/kanye" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"name":"Favs","songs":[]}]`))
		}))
		defer server.Close()

		svc := NewAPIService(server.URL, nil)
		resp, err := svc.Get(context.Background(), "/api/playlists/kanye")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}

		if !resp.OK() {
			t.Errorf("expected 2xx, got %d", resp.StatusCode)
		}
		if !resp.IsJSON {
			t.Error("expected JSON response to be detected")
		}
		if items, ok := resp.JSONData.([]any); !ok || len(items) != 1 {
			t.Errorf("unexpected parsed body: %v", resp.JSONData)
		}
	})

	t.Run("PostJSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %s", ct)
			}

			body, _ := io.ReadAll(r.Body)
			var payload map[string]any
			if err := json.Unmarshal(body, &payload); err != nil {
				t.Fatalf("body did not parse: %v", err)
			}
			if payload["username"] != "kanye" {
				t.Errorf("unexpected payload: %v", payload)
			}

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		svc := NewAPIService(server.URL, nil)
		resp, err := svc.PostJSON(context.Background(), "/api/register", map[string]string{"username": "kanye"})
		if err != nil {
			t.Fatalf("post failed: %v", err)
		}

		if resp.StatusCode != http.StatusCreated {
			t.Errorf("expected 201, got %d", resp.StatusCode)
		}
	})

	t.Run("non-JSON body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("plain text"))
		}))
		defer server.Close()

		svc := NewAPIService(server.URL, nil)
		resp, err := svc.Get(context.Background(), "/")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if resp.IsJSON {
			t.Error("expected non-JSON body to be flagged raw")
		}
		if string(resp.Body) != "plain text" {
			t.Errorf("unexpected body %q", resp.Body)
		}
	})

	t.Run("error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusUnauthorized)
		}))
		defer server.Close()

		svc := NewAPIService(server.URL, nil)
		resp, err := svc.Get(context.Background(), "/api/login")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if resp.OK() {
			t.Error("expected OK() to be false for 401")
		}
	})
}
