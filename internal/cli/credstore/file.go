package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const sessionFileName = "session.json"

// fileRecord is the on-disk layout of the session file
type fileRecord struct {
	Values    map[string]string `json:"values"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// FileStore persists credentials in a JSON file with a bounded lifetime.
// The expiry stamp is what scopes the session: a record older than the TTL
// is treated as absent on read, the way a browser session ends when the tab
// closes. Corrupt or unreadable files are also treated as absent.
type FileStore struct {
	path string
	ttl  time.Duration
	now  func() time.Time
}

// NewFile creates a file-backed store writing to the given path
func NewFile(path string, ttl time.Duration) *FileStore {
	return &FileStore{path: path, ttl: ttl, now: time.Now}
}

// DefaultSessionPath returns the session file location under the user cache dir
func DefaultSessionPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "storekeep", sessionFileName), nil
}

func (f *FileStore) Get(key string) (string, bool, error) {
	rec, ok := f.read()
	if !ok {
		return "", false, nil
	}
	value, present := rec.Values[key]
	return value, present, nil
}

func (f *FileStore) Set(key, value string) error {
	rec, ok := f.read()
	if !ok {
		rec = fileRecord{Values: map[string]string{}}
	}
	rec.Values[key] = value
	rec.ExpiresAt = f.now().Add(f.ttl)

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// read loads the session file, reporting false for any record that should
// be treated as absent: missing file, malformed JSON, or expired stamp.
func (f *FileStore) read() (fileRecord, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fileRecord{}, false
	}

	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fileRecord{}, false
	}
	if rec.Values == nil {
		return fileRecord{}, false
	}
	if !rec.ExpiresAt.After(f.now()) {
		// Expired session files are stale credentials, remove eagerly
		_ = os.Remove(f.path)
		return fileRecord{}, false
	}

	return rec, true
}
