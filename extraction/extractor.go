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


// Package extraction converts one video transcript into validated place
// records using the provider gateway.
//
// Model output is requested in JSON mode against an explicit schema.
// Output that fails to parse or validate gets exactly one repair pass: a
// re-prompt carrying the validation error. If the repaired output still
// fails, the extractor gives up with an error summary instead of places,
// so one bad video never sinks an ingestion batch.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wanderlens/wanderlens/ai"
	"github.com/wanderlens/wanderlens/core"
)

// DefaultTranscriptBudget is the transcript truncation budget in
// characters, roughly 12k tokens worth of English text.
const DefaultTranscriptBudget = 48_000

// truncationNote is appended to the summary when the transcript was cut
// to fit the prompt budget.
const truncationNote = " (Note: the transcript was truncated for length; places near the end of the video may be missing.)"

// Result is the outcome of extracting one video.
type Result struct {
	// Places is empty, never nil, when the transcript contains no
	// recommended places.
	Places []*core.Place

	// Summary describes the video. On extraction failure it carries a
	// human-readable error summary instead.
	Summary string

	// SuggestedTitle is the model's 3-5 word title for the video. Empty
	// when the model did not supply one.
	SuggestedTitle string

	// Truncated reports whether the transcript was cut to the budget.
	Truncated bool
}

// Extractor implements the extraction engine on top of the gateway.
type Extractor struct {
	gateway          *ai.Gateway
	transcriptBudget int
	logger           *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTranscriptBudget sets the transcript truncation budget in
// characters. Default is DefaultTranscriptBudget.
func WithTranscriptBudget(chars int) Option {
	return func(e *Extractor) {
		if chars > 0 {
			e.transcriptBudget = chars
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor creates an extraction engine backed by the gateway.
func NewExtractor(gateway *ai.Gateway, opts ...Option) (*Extractor, error) {
	if gateway == nil {
		return nil, ErrGatewayRequired
	}
	e := &Extractor{
		gateway:          gateway,
		transcriptBudget: DefaultTranscriptBudget,
		logger:           slog.Default().With("component", "extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// extractedPlace mirrors the JSON shape the model is asked for.
type extractedPlace struct {
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Description      string  `json:"description"`
	TimestampSeconds *int    `json:"timestamp_seconds"`
	MentionedContext string  `json:"mentioned_context"`
	Address          *string `json:"address"`
	Neighborhood     *string `json:"neighborhood"`
}

// extractionPayload is the wrapper structure for the model's response.
type extractionPayload struct {
	Places         []extractedPlace `json:"places"`
	SuggestedTitle string           `json:"suggested_title"`
}

// Extract runs the extraction pipeline for one video. A transcript with
// zero recommended places yields an empty place list and no error.
// Provider failures and unrepairable output are returned as errors; the
// accompanying Result still carries an error summary so callers can
// report something human-readable per video.
func (e *Extractor) Extract(ctx context.Context, providerID string, video *core.Video) (*Result, error) {
	transcript, truncated := truncate(video.Transcript, e.transcriptBudget)
	if truncated {
		e.logger.Info("transcript truncated to budget",
			"video", video.ID,
			"original", len(video.Transcript),
			"budget", e.transcriptBudget)
	}

	zero := 0.0
	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: buildExtractionSystemPrompt()},
		{Role: ai.RoleUser, Content: buildVideoPrompt(video, transcript)},
	}

	res, err := e.gateway.Invoke(ctx, providerID, &ai.Request{
		Messages:    messages,
		JSONMode:    true,
		Temperature: &zero,
	})
	if err != nil {
		return &Result{
			Summary:   fmt.Sprintf("Extraction failed for video %s: %v", video.ID, err),
			Truncated: truncated,
		}, fmt.Errorf("video %s: %w", video.ID, err)
	}

	payload, parseErr := parsePayload(res.Content)
	if parseErr != nil {
		// One repair pass: re-prompt with the validation error appended.
		e.logger.Warn("extraction output failed validation, attempting repair",
			"video", video.ID, "err", parseErr)

		repairMessages := append(messages,
			ai.Message{Role: ai.RoleAssistant, Content: res.Content},
			ai.Message{Role: ai.RoleUser, Content: fmt.Sprintf(repairPromptTemplate, parseErr)},
		)
		res, err = e.gateway.Invoke(ctx, providerID, &ai.Request{
			Messages:    repairMessages,
			JSONMode:    true,
			Temperature: &zero,
		})
		if err != nil {
			return &Result{
				Summary:   fmt.Sprintf("Extraction failed for video %s: %v", video.ID, err),
				Truncated: truncated,
			}, fmt.Errorf("video %s: %w", video.ID, err)
		}
		payload, parseErr = parsePayload(res.Content)
		if parseErr != nil {
			e.logger.Error("extraction output still invalid after repair",
				"video", video.ID, "err", parseErr)
			return &Result{
					Summary:   fmt.Sprintf("Extraction failed for video %s: model output failed schema validation", video.ID),
					Truncated: truncated,
				}, fmt.Errorf("video %s: %w: %w",
					video.ID, core.ErrInvalidResponse, parseErr)
		}
	}

	places := e.toPlaces(video, payload.Places)
	summary := e.summarize(ctx, providerID, video, places)
	if truncated {
		summary += truncationNote
	}

	e.logger.Info("extracted places",
		"video", video.ID,
		"places", len(places),
		"suggestedTitle", payload.SuggestedTitle)

	return &Result{
		Places:         places,
		Summary:        summary,
		SuggestedTitle: strings.TrimSpace(payload.SuggestedTitle),
		Truncated:      truncated,
	}, nil
}

// parsePayload cleans, repairs, unmarshals and schema-validates one model
// response.
func parsePayload(raw string) (*extractionPayload, error) {
	text := repairJSON(cleanJSON(raw))

	var payload extractionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("parsing response JSON: %w", err)
	}
	for i, p := range payload.Places {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("places[%d]: name is empty", i)
		}
		if _, err := core.ParsePlaceCategory(p.Category); err != nil {
			return nil, fmt.Errorf("places[%d] (%s): %w", i, p.Name, core.ErrInvalidCategory)
		}
		if p.MentionedContext == "" {
			return nil, fmt.Errorf("places[%d] (%s): mentioned_context is empty", i, p.Name)
		}
		if p.TimestampSeconds != nil && *p.TimestampSeconds < 0 {
			return nil, fmt.Errorf("places[%d] (%s): timestamp_seconds is negative", i, p.Name)
		}
	}
	return &payload, nil
}

// toPlaces converts validated raw places into domain records,
// deduplicating on name+category and keeping the first occurrence.
func (e *Extractor) toPlaces(video *core.Video, raw []extractedPlace) []*core.Place {
	places := make([]*core.Place, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	now := time.Now().UTC()

	for _, p := range raw {
		name := strings.TrimSpace(p.Name)
		category, _ := core.ParsePlaceCategory(p.Category) // validated in parsePayload

		key := strings.ToLower(name) + "\x00" + string(category)
		if _, dup := seen[key]; dup {
			e.logger.Debug("dropping duplicate place", "video", video.ID, "name", name, "category", category)
			continue
		}
		seen[key] = struct{}{}

		place := &core.Place{
			ID:               core.PlaceID(video.ID, strings.ToLower(name), category),
			Name:             name,
			Category:         category,
			Description:      strings.TrimSpace(p.Description),
			VideoID:          video.ID,
			TimestampSeconds: p.TimestampSeconds,
			MentionedContext: strings.TrimSpace(p.MentionedContext),
			CreatedAt:        now,
			Preference:       core.PreferenceNeutral,
		}
		if p.Address != nil {
			place.Address = strings.TrimSpace(*p.Address)
		}
		if p.Neighborhood != nil {
			place.Neighborhood = strings.TrimSpace(*p.Neighborhood)
		}
		places = append(places, place)
	}
	return places
}

// summarize generates the 2-3 sentence video summary. Summary failure is
// not fatal: extraction already succeeded, so fall back to a plain count.
func (e *Extractor) summarize(ctx context.Context, providerID string, video *core.Video, places []*core.Place) string {
	res, err := e.gateway.Invoke(ctx, providerID, &ai.Request{
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: summaryPromptTemplate},
			{Role: ai.RoleUser, Content: buildSummaryPrompt(video, places)},
		},
	})
	if err != nil || strings.TrimSpace(res.Content) == "" {
		e.logger.Warn("summary generation failed, using fallback", "video", video.ID, "err", err)
		return fmt.Sprintf("Found %d recommended places in %q.", len(places), video.Title)
	}
	return strings.TrimSpace(res.Content)
}

// truncate cuts s to at most budget bytes on a rune boundary.
func truncate(s string, budget int) (string, bool) {
	if len(s) <= budget {
		return s, false
	}
	cut := budget
	for cut > 0 && s[cut]&0xC0 == 0x80 { // don't split a UTF-8 sequence
		cut--
	}
	return s[:cut], true
}
