package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bogem/id3v2"
	"github.com/charmbracelet/log"
	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/services"
	"github.com/mixtapehq/mixtape/internal/shared"
	"github.com/mixtapehq/mixtape/internal/store"
)

// maxUploadBytes caps a single audio upload at 32 MiB.
const maxUploadBytes = 32 << 20

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// AuthHandler serves registration and login over the flat-file user store.
type AuthHandler struct {
	store  *store.FileStore
	logger *log.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(userStore *store.FileStore, logger *log.Logger) *AuthHandler {
	return &AuthHandler{store: userStore, logger: logger}
}

// Routes returns the mux patterns this handler serves.
func (h *AuthHandler) Routes() []string {
	return []string{
		"POST /api/register",
		"POST /api/login",
	}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/register":
		h.register(w, r)
	case "/api/login":
		h.login(w, r)
	default:
		http.NotFound(w, r)
	}
}

// register stores the password exactly as sent; the client hashes it before
// the request, so the server only ever sees the opaque hash.
func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		ImgURL    string `json:"imgUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := models.User{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		ImgURL:    req.ImgURL,
		Playlists: []models.Playlist{},
	}

	if err := h.store.CreateUser(user); err != nil {
		switch {
		case errors.Is(err, shared.ErrDuplicateUser):
			respondError(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, shared.ErrMissingField):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to create user", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.store.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user.Sanitized(),
	})
}

// PlaylistHandler serves the wholesale get/replace playlist endpoints the
// sync layer talks to.
type PlaylistHandler struct {
	store  *store.FileStore
	logger *log.Logger
}

// NewPlaylistHandler creates the playlist handler.
func NewPlaylistHandler(userStore *store.FileStore, logger *log.Logger) *PlaylistHandler {
	return &PlaylistHandler{store: userStore, logger: logger}
}

// Routes returns the mux patterns this handler serves.
func (h *PlaylistHandler) Routes() []string {
	return []string{
		"GET /api/playlists/{username}",
		"POST /api/playlists",
	}
}

func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		h.replace(w, r)
		return
	}
	h.get(w, r)
}

func (h *PlaylistHandler) get(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	playlists, err := h.store.Playlists(username)
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("failed to read playlists", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to read playlists")
		return
	}

	respondJSON(w, http.StatusOK, playlists)
}

func (h *PlaylistHandler) replace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string            `json:"username"`
		Playlists []models.Playlist `json:"playlists"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.store.ReplacePlaylists(req.Username, req.Playlists); err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("failed to replace playlists", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to replace playlists")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UploadHandler accepts a single audio file and stores it under the uploads
// dir with a unix-millis timestamp prefix, the naming scheme the client's
// file URLs were written against.
type UploadHandler struct {
	uploadsDir string
	logger     *log.Logger
}

// NewUploadHandler creates the upload handler.
func NewUploadHandler(uploadsDir string, logger *log.Logger) *UploadHandler {
	return &UploadHandler{uploadsDir: uploadsDir, logger: logger}
}

// Routes returns the mux patterns this handler serves.
func (h *UploadHandler) Routes() []string {
	return []string{"POST /api/upload"}
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("mp3file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		h.logger.Error("failed to create uploads dir", "error", err)
		respondError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(header.Filename))
	destPath := filepath.Join(h.uploadsDir, name)

	dest, err := os.Create(destPath)
	if err != nil {
		h.logger.Error("failed to create upload file", "error", err)
		respondError(w, http.StatusInternalServerError, "upload failed")
		return
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		h.logger.Error("failed to write upload", "error", err)
		os.Remove(destPath)
		respondError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	resp := map[string]any{
		"success":  true,
		"fileUrl":  "/uploads/" + name,
		"fileName": header.Filename,
	}

	// ID3 tags, when present, seed the song metadata so the client does
	// not have to type the title by hand.
	if title, artist := readID3(destPath); title != "" {
		resp["title"] = title
		if artist != "" {
			resp["artist"] = artist
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// sanitizeFilename strips path separators so the original name cannot
// escape the uploads dir.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "")
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}

// readID3 returns the title and artist frames of an mp3 file, or empty
// strings when the file has no usable tag.
func readID3(path string) (title, artist string) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return "", ""
	}
	defer tag.Close()

	return strings.TrimSpace(tag.Title()), strings.TrimSpace(tag.Artist())
}

// ProxyHandler proxies search and video-metadata requests to the upstream
// provider so the API key never reaches the client.
type ProxyHandler struct {
	search services.SearchService
	logger *log.Logger
}

// NewProxyHandler creates the proxy handler.
func NewProxyHandler(search services.SearchService, logger *log.Logger) *ProxyHandler {
	return &ProxyHandler{search: search, logger: logger}
}

// Routes returns the mux patterns this handler serves.
func (h *ProxyHandler) Routes() []string {
	return []string{
		"GET /api/youtube/search",
		"GET /api/youtube/videos",
	}
}

func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/youtube/search":
		h.searchVideos(w, r)
	case "/api/youtube/videos":
		h.videoDetails(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ProxyHandler) searchVideos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "No query provided")
		return
	}

	videos, err := h.search.Search(r.Context(), query)
	if err != nil {
		h.logger.Warn("search proxy failed", "query", query, "error", err)
		respondError(w, http.StatusBadGateway, "Server failed to fetch from "+h.search.Name())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"items": videos})
}

func (h *ProxyHandler) videoDetails(w http.ResponseWriter, r *http.Request) {
	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		respondError(w, http.StatusBadRequest, "No video IDs provided")
		return
	}

	videos, err := h.search.Videos(r.Context(), strings.Split(idParam, ","))
	if err != nil {
		h.logger.Warn("video details proxy failed", "error", err)
		respondError(w, http.StatusBadGateway, "Server failed to fetch video details")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"items": videos})
}
