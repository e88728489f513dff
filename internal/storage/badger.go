package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/complianceos/complianceos/internal/common"
	"github.com/complianceos/complianceos/internal/models"
)

// snapshotKey is the single key the whole snapshot lives under.
var snapshotKey = []byte("complianceos/snapshot")

// BadgerStorage keeps the snapshot in an embedded BadgerDB under one key.
// Badger gives crash-safe writes without managing temp files ourselves.
type BadgerStorage struct {
	db *badger.DB
}

// NewBadgerStorage opens (or creates) a Badger database at dir.
func NewBadgerStorage(dir string) (*BadgerStorage, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStorage{db: db}, nil
}

// NewInMemoryBadgerStorage opens a non-persistent instance, used in tests.
func NewInMemoryBadgerStorage() (*BadgerStorage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger database: %w", err)
	}
	return &BadgerStorage{db: db}, nil
}

func (b *BadgerStorage) Load(ctx context.Context) (models.Snapshot, bool, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.Snapshot{}, false, nil
	}
	if err != nil {
		return models.Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, false, fmt.Errorf("%w: %v", common.ErrorSnapshotCorrupt, err)
	}
	return snap, true, nil
}

func (b *BadgerStorage) Save(ctx context.Context, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey, data)
	})
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (b *BadgerStorage) Close() error {
	return b.db.Close()
}
