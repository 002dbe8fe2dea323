package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/domain"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

// SnapshotVersion is the current blob format.
const SnapshotVersion = 1

// Snapshot is the whole mirror as one JSON blob.
type Snapshot struct {
	Key     string    `json:"key"`
	Version int       `json:"version"`
	SavedAt time.Time `json:"savedAt"`
	Collections
}

// Snapshot returns a copy of every collection stamped with key.
func (s *Store) Snapshot(key string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Key:         key,
		Version:     SnapshotVersion,
		SavedAt:     s.now(),
		Collections: s.data.clone(),
	}
}

// Restore replaces every collection with the content of snap. The snapshot
// must carry the expected key and a supported version.
func (s *Store) Restore(snap Snapshot, key string) error {
	return s.RestoreWith(context.Background(), snap, key, nil)
}

// RestoreWith is Restore followed by check, both under one write lock. check
// sees the restored collections and may repair them; if it fails the
// previous content is kept.
func (s *Store) RestoreWith(ctx context.Context, snap Snapshot, key string, check func(ctx context.Context, b store.Backend) error) error {
	if snap.Key != key {
		return domain.NewValidationError("key", fmt.Sprintf("snapshot key %q does not match %q", snap.Key, key))
	}
	if snap.Version != SnapshotVersion {
		return domain.NewValidationError("version", fmt.Sprintf("unsupported snapshot version %d", snap.Version))
	}

	return s.RunInTx(ctx, func(ctx context.Context, b store.Backend) error {
		if err := s.data.replaceAll(snap.Collections); err != nil {
			return err
		}
		if check == nil {
			return nil
		}
		return check(ctx, b)
	})
}

// SaveFile writes the snapshot to path atomically: the blob goes to a
// temporary file first which is then renamed over the target.
func (s *Store) SaveFile(path, key string) error {
	snap := s.Snapshot(key)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// LoadFile restores the store from the snapshot at path. It reports false
// without error when the file does not exist.
func (s *Store) LoadFile(path, key string) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var snap Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return false, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := s.Restore(snap, key); err != nil {
		return false, err
	}
	return true, nil
}
