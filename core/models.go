package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// PlaceCategory classifies an extracted place.
type PlaceCategory string

const (
	CategoryRestaurant PlaceCategory = "restaurant"
	CategoryAttraction PlaceCategory = "attraction"
	CategoryHotel      PlaceCategory = "hotel"
	CategoryActivity   PlaceCategory = "activity"
	CategoryCoffeeShop PlaceCategory = "coffee_shop"
	CategoryShopping   PlaceCategory = "shopping"
	CategoryOther      PlaceCategory = "other"
)

// PlaceCategories lists every valid category, in display order.
var PlaceCategories = []PlaceCategory{
	CategoryRestaurant,
	CategoryAttraction,
	CategoryHotel,
	CategoryActivity,
	CategoryCoffeeShop,
	CategoryShopping,
	CategoryOther,
}

// Preference records what the user thinks of a place.
// It is the only Place field that may change after creation.
type Preference string

const (
	PreferenceNeutral       Preference = "neutral"
	PreferenceInterested    Preference = "interested"
	PreferenceNotInterested Preference = "not_interested"
)

// Role identifies the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Video is a transcript-bearing video attached to exactly one session.
// Videos are immutable once created.
type Video struct {
	ID              string
	Title           string
	Description     string
	URL             string
	DurationSeconds int
	Transcript      string
	Summary         string
	PlacesFound     int
}

// Place is a structured record of a recommended location derived from a
// video transcript. VideoID is a weak reference; it must resolve to a
// Video in the same session.
type Place struct {
	ID               string
	Name             string
	Category         PlaceCategory
	Description      string
	VideoID          string
	TimestampSeconds *int
	MentionedContext string
	Address          string
	Neighborhood     string
	CreatedAt        time.Time
	Preference       Preference
}

// Source cites a video (and optionally an offset into it) that justifies
// part of an assistant answer.
type Source struct {
	VideoID          string
	Title            string
	TimestampSeconds *int
}

// ChatTurn is one immutable entry in a session's append-only chat history.
// Sources is populated for assistant turns only.
type ChatTurn struct {
	Role             Role
	Content          string
	Timestamp        time.Time
	PlacesReferenced []string
	Sources          []Source
}

// Session holds one user's videos, extracted places, and chat history.
// Sessions are owned by the session store and mutated only through it.
type Session struct {
	ID           string
	CreatedAt    time.Time
	LastActivity time.Time
	Videos       []*Video
	Places       []*Place
	ChatHistory  []ChatTurn
}

// PlaceByID returns the place with the given id, or nil.
func (s *Session) PlaceByID(id string) *Place {
	for _, p := range s.Places {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// VideoByID returns the video with the given id, or nil.
func (s *Session) VideoByID(id string) *Video {
	for _, v := range s.Videos {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// VideoSummary is the per-video outcome reported after ingestion.
type VideoSummary struct {
	VideoID     string
	Title       string
	Summary     string
	PlacesCount int
}

// IngestReport aggregates the outcome of one ingestion batch. Failures
// appear in Errors keyed by video id (or the raw input when no id could
// be extracted). Videos lists, in input order, every video that joined
// the session, including extraction-failed ones recorded with an error
// summary and zero places. TotalPlaces counts extracted places only.
type IngestReport struct {
	SessionID   string
	Videos      []VideoSummary
	Errors      map[string]string
	TotalPlaces int
}

// NewSessionID generates an opaque unique session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// PlaceID generates a deterministic place identifier from the place's
// identity (originating video, name, category). Identical mentions hash
// to the same id, which makes deduplication a map insert.
func PlaceID(videoID, name string, category PlaceCategory) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(videoID))
	h.Write([]byte{0})
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(category))
	sum := h.Sum(nil)
	return strconv.FormatUint(binary.LittleEndian.Uint64(sum), 16)
}
