package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/complianceos/complianceos/internal/common"
	"github.com/complianceos/complianceos/internal/models"
)

// FileStorage keeps the snapshot in a single JSON file. Writes go through a
// temp file followed by a rename so a crash mid-write never leaves a
// truncated snapshot behind.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) (*FileStorage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o770); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return &FileStorage{path: path}, nil
}

func (f *FileStorage) Load(ctx context.Context) (models.Snapshot, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Snapshot{}, false, nil
		}
		return models.Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, false, fmt.Errorf("%w: %v", common.ErrorSnapshotCorrupt, err)
	}
	return snap, true, nil
}

func (f *FileStorage) Save(ctx context.Context, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o660); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}
