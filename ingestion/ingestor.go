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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/wanderlens/wanderlens/core"
	"github.com/wanderlens/wanderlens/extraction"
	"github.com/wanderlens/wanderlens/transcript"
)

// maxBatchSize caps the number of video identifiers per ingestion request.
const maxBatchSize = 10

// SessionStore is the subset of session store operations the ingestor needs.
type SessionStore interface {
	Create() *core.Session
	Get(id string) (*core.Session, error)
	AppendVideosAndPlaces(id string, videos []*core.Video, places []*core.Place) (*core.Session, error)
}

// Extractor produces places and a summary from a fetched video.
type Extractor interface {
	Extract(ctx context.Context, providerID string, video *core.Video) (*extraction.Result, error)
}

// Ingestor orchestrates batch ingestion of videos into a session.
type Ingestor struct {
	store     SessionStore
	fetcher   transcript.Fetcher
	extractor Extractor
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor) error

// WithPoolSize sets the worker pool size for concurrent video processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(ing *Ingestor) error {
		if size < 1 {
			size = 1
		}
		if ing.pool != nil {
			ing.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ing.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ing *Ingestor) error {
		if logger == nil {
			logger = slog.Default()
		}
		ing.logger = logger
		return nil
	}
}

// NewIngestor creates a new batch ingestor.
func NewIngestor(store SessionStore, fetcher transcript.Fetcher, extractor Extractor, opts ...Option) (*Ingestor, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ing := &Ingestor{
		store:     store,
		fetcher:   fetcher,
		extractor: extractor,
		pool:      pool,
		logger:    slog.Default().With("component", "ingestor"),
	}

	for _, opt := range opts {
		if optErr := opt(ing); optErr != nil {
			ing.Release()
			return nil, optErr
		}
	}

	return ing, nil
}

// outcome is the result of processing one video.
type outcome struct {
	video  *core.Video
	places []*core.Place
	err    error
}

// Ingest fetches, extracts, and records a batch of videos.
//
// Inputs may be bare video ids or YouTube URLs. sessionID selects an
// existing session; when empty a new session is created. Per-video
// failures are reported in the returned report's Errors map and do not
// fail the batch; successful videos are appended to the session in
// input order.
func (ing *Ingestor) Ingest(ctx context.Context, sessionID, providerID string, inputs []string) (*core.IngestReport, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no video identifiers provided", core.ErrValidation)
	}
	if len(inputs) > maxBatchSize {
		return nil, fmt.Errorf("%w: %d video identifiers exceeds the batch limit of %d",
			core.ErrValidation, len(inputs), maxBatchSize)
	}

	report := &core.IngestReport{Errors: make(map[string]string)}

	// Resolve URL forms to bare ids, dropping duplicates (first wins).
	seen := make(map[string]bool, len(inputs))
	videoIDs := make([]string, 0, len(inputs))
	for _, input := range inputs {
		id, err := transcript.ExtractVideoID(input)
		if err != nil {
			report.Errors[input] = err.Error()
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		videoIDs = append(videoIDs, id)
	}

	var session *core.Session
	if sessionID == "" {
		session = ing.store.Create()
	} else {
		var err error
		session, err = ing.store.Get(sessionID)
		if err != nil {
			return nil, err
		}
	}
	report.SessionID = session.ID

	// Ids the session already holds are reported per-video, not
	// re-ingested: the store rejects duplicate video ids atomically,
	// which would sink the rest of the batch.
	kept := videoIDs[:0]
	for _, id := range videoIDs {
		if session.VideoByID(id) != nil {
			report.Errors[id] = fmt.Sprintf("video %s already in session %s", id, session.ID)
			continue
		}
		kept = append(kept, id)
	}
	videoIDs = kept

	outcomes := make([]outcome, len(videoIDs))
	var wg sync.WaitGroup
	for i, videoID := range videoIDs {
		i, videoID := i, videoID
		wg.Add(1)
		task := func() {
			defer wg.Done()
			outcomes[i] = ing.processVideo(ctx, providerID, videoID)
		}
		if err := ing.pool.Submit(task); err != nil {
			wg.Done()
			outcomes[i] = outcome{err: err}
		}
	}
	wg.Wait()

	videos := make([]*core.Video, 0, len(videoIDs))
	places := make([]*core.Place, 0)
	for i, out := range outcomes {
		videoID := videoIDs[i]
		if out.err != nil {
			ing.logger.Warn("video ingestion failed", "video", videoID, "error", out.err)
			report.Errors[videoID] = out.err.Error()
			// Extraction failures still carry the fetched video with an
			// error summary; record it so the session keeps the transcript.
			if out.video == nil {
				continue
			}
		}
		videos = append(videos, out.video)
		places = append(places, out.places...)
		report.Videos = append(report.Videos, core.VideoSummary{
			VideoID:     out.video.ID,
			Title:       out.video.Title,
			Summary:     out.video.Summary,
			PlacesCount: len(out.places),
		})
		report.TotalPlaces += len(out.places)
	}

	if len(videos) > 0 {
		if _, err := ing.store.AppendVideosAndPlaces(session.ID, videos, places); err != nil {
			return nil, err
		}
	}

	ing.logger.Info("ingestion batch finished",
		"session", session.ID,
		"videos", len(videos),
		"failures", len(report.Errors),
		"places", report.TotalPlaces)

	return report, nil
}

// processVideo runs the fetch and extract stages for one video.
func (ing *Ingestor) processVideo(ctx context.Context, providerID, videoID string) outcome {
	video, err := ing.fetcher.Fetch(ctx, videoID)
	if err != nil {
		return outcome{err: err}
	}

	res, err := ing.extractor.Extract(ctx, providerID, video)
	if err != nil {
		if res == nil {
			return outcome{err: err}
		}
		// Schema validation failed even after repair: keep the video
		// with the error summary and no places.
		video.Summary = res.Summary
		video.PlacesFound = 0
		return outcome{video: video, err: err}
	}

	if res.SuggestedTitle != "" {
		video.Title = res.SuggestedTitle
	}
	video.Summary = res.Summary
	video.PlacesFound = len(res.Places)

	return outcome{video: video, places: res.Places}
}

// Release releases the worker pool.
// The ingestor should not be used after calling Release.
func (ing *Ingestor) Release() {
	if ing.pool != nil {
		ing.pool.Release()
	}
}
