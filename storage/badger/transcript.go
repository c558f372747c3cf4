package badger

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/wanderlens/wanderlens/core"
	"github.com/wanderlens/wanderlens/storage"
)

// TranscriptCache implements storage.TranscriptCache for BadgerDB.
type TranscriptCache struct {
	backend *Backend
}

var _ storage.TranscriptCache = (*TranscriptCache)(nil)

// NewTranscriptCache opens a BadgerDB-backed transcript cache at path.
func NewTranscriptCache(path string) (storage.TranscriptCache, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &TranscriptCache{backend: backend}, nil
}

// newTranscriptCache wraps an existing backend. Used by tests.
func newTranscriptCache(backend *Backend) *TranscriptCache {
	return &TranscriptCache{backend: backend}
}

// GetVideo retrieves a cached video by its ID.
func (c *TranscriptCache) GetVideo(videoID string) (*core.Video, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var video *core.Video
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVideoKey(videoID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			video, err = storage.UnmarshalVideo(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return video, nil
}

// PutVideo stores a video in the cache.
func (c *TranscriptCache) PutVideo(video *core.Video) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeVideoKey(video.ID), storage.MarshalVideo(video)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying backend.
func (c *TranscriptCache) Close() error {
	return c.backend.Close()
}
