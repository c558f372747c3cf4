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


package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wanderlens/wanderlens/ai"
	"github.com/wanderlens/wanderlens/core"
)

const (
	searchPlacesTool    = "search_places"
	getPlaceContextTool = "get_place_context"

	defaultSearchLimit      = 10
	contextExcerptRuneLimit = 600
)

func chatTools() []ai.Tool {
	return []ai.Tool{
		{
			Name:        searchPlacesTool,
			Description: "Search the session's extracted places by keyword and/or category. Returns matching places with their ids for citation.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Keyword matched against name, description, and mention context. Empty matches all.",
					},
					"category": map[string]any{
						"type":        "string",
						"description": "Optional category filter: restaurant, attraction, hotel, activity, coffee_shop, shopping, other.",
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of results (default 10).",
					},
				},
			},
		},
		{
			Name:        getPlaceContextTool,
			Description: "Fetch one place's full details plus the transcript excerpt around its mention in the originating video.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"place_id": map[string]any{
						"type":        "string",
						"description": "The place id as returned by search_places.",
					},
				},
				"required": []string{"place_id"},
			},
		},
	}
}

type searchPlacesArgs struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

type getPlaceContextArgs struct {
	PlaceID string `json:"place_id"`
}

// placeResult is the tool-facing projection of a core.Place.
type placeResult struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Description      string `json:"description"`
	MentionedContext string `json:"mentioned_context"`
	VideoID          string `json:"video_id"`
	TimestampSeconds *int   `json:"timestamp_seconds"`
	Preference       string `json:"preference"`
}

// executeTool runs a tool call against the session snapshot. Lookup
// misses and malformed arguments come back as tool content for the
// model to react to, never as Go errors.
func executeTool(s *core.Session, call ai.ToolCall) string {
	switch call.Name {
	case searchPlacesTool:
		var args searchPlacesArgs
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return fmt.Sprintf("invalid arguments for %s: %v", searchPlacesTool, err)
		}
		return searchPlaces(s, args)
	case getPlaceContextTool:
		var args getPlaceContextArgs
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return fmt.Sprintf("invalid arguments for %s: %v", getPlaceContextTool, err)
		}
		return getPlaceContext(s, args.PlaceID)
	default:
		return fmt.Sprintf("unknown tool %q", call.Name)
	}
}

func searchPlaces(s *core.Session, args searchPlacesArgs) string {
	limit := args.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var categoryFilter core.PlaceCategory
	if args.Category != "" {
		parsed, err := core.ParsePlaceCategory(args.Category)
		if err != nil {
			return fmt.Sprintf("unknown category %q; valid categories: %s",
				args.Category, joinCategories())
		}
		categoryFilter = parsed
	}

	query := strings.ToLower(strings.TrimSpace(args.Query))
	results := make([]placeResult, 0, limit)
	for _, p := range s.Places {
		if categoryFilter != "" && p.Category != categoryFilter {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		results = append(results, placeResult{
			ID:               p.ID,
			Name:             p.Name,
			Category:         string(p.Category),
			Description:      p.Description,
			MentionedContext: p.MentionedContext,
			VideoID:          p.VideoID,
			TimestampSeconds: p.TimestampSeconds,
			Preference:       string(p.Preference),
		})
		if len(results) == limit {
			break
		}
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Sprintf("failed to encode search results: %v", err)
	}
	return string(payload)
}

// matchesQuery accepts either a direct substring hit or a place whose
// combined text contains every non-stop-word of the query.
func matchesQuery(p *core.Place, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.MentionedContext), query) {
		return true
	}
	combined := p.Name + " " + p.Description + " " + p.MentionedContext
	return containsAllQueryWords(combined, query)
}

func getPlaceContext(s *core.Session, placeID string) string {
	place := s.PlaceByID(placeID)
	if place == nil {
		return fmt.Sprintf("place %s not found in this session", placeID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Place: %s (%s), id %s\n", place.Name, place.Category, place.ID)
	fmt.Fprintf(&b, "Description: %s\n", place.Description)
	if place.MentionedContext != "" {
		fmt.Fprintf(&b, "Mentioned: %s\n", place.MentionedContext)
	}
	if place.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", place.Address)
	}
	if place.Neighborhood != "" {
		fmt.Fprintf(&b, "Neighborhood: %s\n", place.Neighborhood)
	}
	fmt.Fprintf(&b, "Preference: %s\n", place.Preference)

	video := s.VideoByID(place.VideoID)
	if video == nil {
		return b.String()
	}
	fmt.Fprintf(&b, "From video: %s (%s)\n", video.Title, video.ID)
	if excerpt := transcriptExcerpt(video.Transcript, place.Name); excerpt != "" {
		fmt.Fprintf(&b, "Transcript excerpt: %s\n", excerpt)
	}
	return b.String()
}

// transcriptExcerpt returns the transcript text surrounding the first
// mention of name, or empty when the name never appears.
func transcriptExcerpt(transcript, name string) string {
	if transcript == "" || name == "" {
		return ""
	}
	runes := []rune(transcript)
	lower := strings.ToLower(transcript)
	idx := strings.Index(lower, strings.ToLower(name))
	if idx < 0 {
		return ""
	}
	// Convert the byte offset to a rune offset
	runeIdx := len([]rune(transcript[:idx]))

	half := contextExcerptRuneLimit / 2
	start := runeIdx - half
	if start < 0 {
		start = 0
	}
	end := runeIdx + half
	if end > len(runes) {
		end = len(runes)
	}
	excerpt := string(runes[start:end])
	if start > 0 {
		excerpt = "..." + excerpt
	}
	if end < len(runes) {
		excerpt += "..."
	}
	return excerpt
}

func joinCategories() string {
	parts := make([]string, len(core.PlaceCategories))
	for i, c := range core.PlaceCategories {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
