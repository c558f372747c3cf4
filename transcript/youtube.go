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
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wanderlens/wanderlens/core"
)

const timedTextEndpoint = "https://video.google.com/timedtext"

// YouTubeFetcher fetches captions from YouTube's timedtext endpoint.
// Title and description come back as placeholders; the extraction
// engine's suggested title replaces them downstream.
type YouTubeFetcher struct {
	client   *http.Client
	endpoint string
	language string
	logger   *slog.Logger
}

// NewYouTubeFetcher creates a fetcher for English captions with a 30s
// HTTP timeout.
func NewYouTubeFetcher() *YouTubeFetcher {
	return &YouTubeFetcher{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: timedTextEndpoint,
		language: "en",
		logger:   slog.Default().With("component", "youtube-fetcher"),
	}
}

type timedText struct {
	XMLName xml.Name       `xml:"transcript"`
	Texts   []timedSegment `xml:"text"`
}

type timedSegment struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

// Fetch downloads and joins the caption track for a video.
func (f *YouTubeFetcher) Fetch(ctx context.Context, videoID string) (*core.Video, error) {
	q := url.Values{}
	q.Set("lang", f.language)
	q.Set("v", videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("video %s: %w", videoID, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching transcript for video %s: %w", core.ErrExternalUnavailable, videoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: transcript fetch for video %s returned status %d",
			core.ErrExternalUnavailable, videoID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading transcript for video %s: %w", core.ErrExternalUnavailable, videoID, err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("%w: parsing transcript for video %s: %w", core.ErrExternalUnavailable, videoID, err)
	}
	if len(tt.Texts) == 0 {
		return nil, fmt.Errorf("%w: no transcript available for video %s", core.ErrExternalUnavailable, videoID)
	}

	parts := make([]string, 0, len(tt.Texts))
	var end float64
	for _, seg := range tt.Texts {
		text := strings.TrimSpace(html.UnescapeString(seg.Body))
		if text != "" {
			parts = append(parts, text)
		}
		if segEnd := seg.Start + seg.Dur; segEnd > end {
			end = segEnd
		}
	}
	full := strings.Join(parts, " ")
	f.logger.Info("fetched transcript", "video", videoID, "length", len(full))

	return &core.Video{
		ID:              videoID,
		Title:           "Video " + videoID,
		URL:             "https://www.youtube.com/watch?v=" + videoID,
		DurationSeconds: int(end),
		Transcript:      full,
	}, nil
}
