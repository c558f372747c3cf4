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


// Package transcript is the boundary to the external transcript source.
// The engine treats transcript acquisition as a black box behind the
// Fetcher interface; this package supplies a YouTube implementation and
// a cache-backed decorator.
package transcript

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/wanderlens/wanderlens/core"
)

// Fetcher obtains a video's transcript and metadata.
// Implementations must be thread-safe for concurrent use.
type Fetcher interface {
	// Fetch returns the video with its full transcript populated.
	// Summary and PlacesFound are left empty for the extraction engine
	// to fill in. Failures wrap core.ErrExternalUnavailable.
	Fetch(ctx context.Context, videoID string) (*core.Video, error)
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&?/]+)`),
	regexp.MustCompile(`youtube\.com/v/([^&?/]+)`),
}

var bareVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)

// ExtractVideoID pulls a video id out of the common YouTube URL forms
// (watch?v=, youtu.be/, embed/, /v/). A string that already looks like a
// bare id passes through unchanged.
func ExtractVideoID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty video identifier", core.ErrValidation)
	}
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(s); m != nil {
			return m[1], nil
		}
	}
	if bareVideoID.MatchString(s) {
		return s, nil
	}
	return "", fmt.Errorf("%w: could not extract video id from %q", core.ErrValidation, s)
}
