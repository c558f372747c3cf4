// Copyright 2026 Wanderlens Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transcript

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wanderlens/wanderlens/core"
	"github.com/wanderlens/wanderlens/storage"
)

// CachingFetcher wraps a Fetcher with a persistent transcript cache so
// repeated ingestions of the same video skip the network round trip.
// Cache failures degrade to a direct fetch rather than failing the
// operation.
type CachingFetcher struct {
	inner  Fetcher
	cache  storage.TranscriptCache
	logger *slog.Logger
}

// NewCachingFetcher wraps inner with cache.
func NewCachingFetcher(inner Fetcher, cache storage.TranscriptCache) *CachingFetcher {
	return &CachingFetcher{
		inner:  inner,
		cache:  cache,
		logger: slog.Default().With("component", "transcript-cache"),
	}
}

// Fetch returns the cached video when present, otherwise delegates to
// the inner fetcher and stores the result.
func (c *CachingFetcher) Fetch(ctx context.Context, videoID string) (*core.Video, error) {
	cached, err := c.cache.GetVideo(videoID)
	if err == nil {
		c.logger.Debug("transcript cache hit", "video", videoID)
		return cached, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		c.logger.Warn("transcript cache read failed", "video", videoID, "error", err)
	}

	video, err := c.inner.Fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := c.cache.PutVideo(video); err != nil {
		c.logger.Warn("transcript cache write failed", "video", videoID, "error", err)
	}
	return video, nil
}
