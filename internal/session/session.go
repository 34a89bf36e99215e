// Package session provides a small file-backed key/value cache holding the
// client-local mirror of the signed-in user. It is overwritten after every
// successful sync and read back on startup, so it may transiently lag the
// backing store between syncs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// KeyCurrentUser is the well-known key the signed-in user record lives under.
const KeyCurrentUser = "currentUser"

// Cache stores JSON values under string keys in a single file.
//
// Single writer, no locking. A missing or unparsable file reads as empty.
type Cache struct {
	path string
}

// NewCache creates a cache backed by the given file path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Path returns the backing file path.
func (c *Cache) Path() string {
	return c.path
}

// Set stores value under key, replacing any previous entry.
func (c *Cache) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal session value: %w", err)
	}

	entries := c.read()
	entries[key] = data
	return c.write(entries)
}

// Get unmarshals the entry under key into out. The second return is false
// when the key is absent.
func (c *Cache) Get(key string, out any) (bool, error) {
	entries := c.read()
	data, ok := entries[key]
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal session value: %w", err)
	}
	return true, nil
}

// Delete removes the entry under key. Absent keys are a no-op.
func (c *Cache) Delete(key string) error {
	entries := c.read()
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return c.write(entries)
}

// Clear removes the backing file entirely.
func (c *Cache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session cache: %w", err)
	}
	return nil
}

func (c *Cache) read() map[string]json.RawMessage {
	entries := map[string]json.RawMessage{}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupt cache reads as empty; the next write replaces it.
		return map[string]json.RawMessage{}
	}

	return entries
}

func (c *Cache) write(entries map[string]json.RawMessage) error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create session dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session cache: %w", err)
	}
	return nil
}
