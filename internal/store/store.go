package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/shared"
)

// FileStore holds all user records in one JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// New creates a FileStore backed by the file at path. The file is created
// lazily on the first write.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// ReadAll returns every user record in the store.
//
// A missing or unparsable file reads as an empty store; the caller cannot
// distinguish the two, matching the wholesale-read contract.
func (s *FileStore) ReadAll() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// WriteAll rewrites the whole store with the given records.
func (s *FileStore) WriteAll(users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(users)
}

// FindUser returns the record for the given username.
func (s *FileStore) FindUser(username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readLocked()
	if err != nil {
		return models.User{}, err
	}

	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%w: %s", shared.ErrUserNotFound, username)
}

// CreateUser appends a new user record. The password field is stored as the
// opaque hash string the client sent.
func (s *FileStore) CreateUser(user models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readLocked()
	if err != nil {
		return err
	}

	for _, u := range users {
		if u.Username == user.Username {
			return fmt.Errorf("%w: %s", shared.ErrDuplicateUser, user.Username)
		}
	}

	if user.Playlists == nil {
		user.Playlists = []models.Playlist{}
	}

	return s.writeLocked(append(users, user))
}

// Authenticate compares the stored opaque hash with the incoming one.
func (s *FileStore) Authenticate(username, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readLocked()
	if err != nil {
		return models.User{}, err
	}

	for _, u := range users {
		if u.Username == username && u.Password == passwordHash {
			return u, nil
		}
	}
	return models.User{}, shared.ErrInvalidLogin
}

// Playlists returns the playlist collection for the given username.
func (s *FileStore) Playlists(username string) ([]models.Playlist, error) {
	user, err := s.FindUser(username)
	if err != nil {
		return nil, err
	}
	if user.Playlists == nil {
		return []models.Playlist{}, nil
	}
	return user.Playlists, nil
}

// ReplacePlaylists replaces the user's playlist collection wholesale and
// rewrites the store.
func (s *FileStore) ReplacePlaylists(username string, playlists []models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readLocked()
	if err != nil {
		return err
	}

	for i := range users {
		if users[i].Username == username {
			if playlists == nil {
				playlists = []models.Playlist{}
			}
			users[i].Playlists = playlists
			return s.writeLocked(users)
		}
	}
	return fmt.Errorf("%w: %s", shared.ErrUserNotFound, username)
}

func (s *FileStore) readLocked() ([]models.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.User{}, nil
		}
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		// Corrupt stores read as empty, matching the original behavior.
		return []models.User{}, nil
	}
	return users, nil
}

func (s *FileStore) writeLocked(users []models.User) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	return nil
}
