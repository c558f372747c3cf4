package storage

import (
	"github.com/wanderlens/wanderlens/core"
)

// TranscriptCache persists fetched videos keyed by video ID.
// Implementations must be thread-safe and support concurrent access.
type TranscriptCache interface {
	// GetVideo retrieves a cached video by its ID.
	// Returns ErrNotFound if the video has not been cached.
	GetVideo(videoID string) (*core.Video, error)

	// PutVideo stores a video in the cache, replacing any prior entry
	// with the same ID.
	PutVideo(video *core.Video) error

	// Close closes the cache and releases resources.
	Close() error
}
