package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionID(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestPlaceID(t *testing.T) {
	t.Run("deterministic for the same identity", func(t *testing.T) {
		a := PlaceID("vid1", "Taqueria El Sol", CategoryRestaurant)
		b := PlaceID("vid1", "Taqueria El Sol", CategoryRestaurant)
		assert.Equal(t, a, b)
	})

	t.Run("differs across identity components", func(t *testing.T) {
		base := PlaceID("vid1", "Taqueria El Sol", CategoryRestaurant)
		assert.NotEqual(t, base, PlaceID("vid2", "Taqueria El Sol", CategoryRestaurant))
		assert.NotEqual(t, base, PlaceID("vid1", "Taqueria El Norte", CategoryRestaurant))
		assert.NotEqual(t, base, PlaceID("vid1", "Taqueria El Sol", CategoryAttraction))
	})

	t.Run("separator prevents concatenation collisions", func(t *testing.T) {
		a := PlaceID("ab", "c", CategoryOther)
		b := PlaceID("a", "bc", CategoryOther)
		assert.NotEqual(t, a, b)
	})
}

func TestSessionLookups(t *testing.T) {
	place := &Place{ID: "p1", Name: "Museum", Category: CategoryAttraction, VideoID: "v1"}
	video := &Video{ID: "v1", Title: "City Guide"}
	s := &Session{
		ID:     NewSessionID(),
		Videos: []*Video{video},
		Places: []*Place{place},
	}

	require.Same(t, place, s.PlaceByID("p1"))
	require.Same(t, video, s.VideoByID("v1"))
	assert.Nil(t, s.PlaceByID("missing"))
	assert.Nil(t, s.VideoByID("missing"))
}
