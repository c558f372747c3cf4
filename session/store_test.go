package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderlens/wanderlens/core"
)

// testClock is a settable time source for expiry tests.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testVideo(id string) *core.Video {
	return &core.Video{ID: id, Title: "Video " + id, Transcript: "transcript"}
}

func testPlace(videoID, name string) *core.Place {
	return &core.Place{
		ID:       core.PlaceID(videoID, name, core.CategoryRestaurant),
		Name:     name,
		Category: core.CategoryRestaurant,
		VideoID:  videoID,
	}
}

func TestCreateAndGet(t *testing.T) {
	st := New()

	created := st.Create()
	require.NotEmpty(t, created.ID)

	got, err := st.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 1, st.Len())
}

func TestGetUnknown(t *testing.T) {
	st := New()
	_, err := st.Get("missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDelete(t *testing.T) {
	st := New()
	s := st.Create()

	require.NoError(t, st.Delete(s.ID))
	assert.Equal(t, 0, st.Len())

	assert.ErrorIs(t, st.Delete(s.ID), core.ErrNotFound)
	_, err := st.Get(s.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestAppendVideosAndPlaces(t *testing.T) {
	t.Run("appends and snapshots", func(t *testing.T) {
		st := New()
		s := st.Create()

		snap, err := st.AppendVideosAndPlaces(s.ID,
			[]*core.Video{testVideo("v1")},
			[]*core.Place{testPlace("v1", "El Sol")})
		require.NoError(t, err)
		assert.Len(t, snap.Videos, 1)
		assert.Len(t, snap.Places, 1)
		assert.Equal(t, core.PreferenceNeutral, snap.Places[0].Preference)
		assert.False(t, snap.Places[0].CreatedAt.IsZero())
	})

	t.Run("every place reference resolves or nothing is appended", func(t *testing.T) {
		st := New()
		s := st.Create()

		_, err := st.AppendVideosAndPlaces(s.ID,
			[]*core.Video{testVideo("v1")},
			[]*core.Place{testPlace("v1", "Good"), testPlace("v9", "Dangling")})
		require.ErrorIs(t, err, core.ErrValidation)

		got, err := st.Get(s.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Videos)
		assert.Empty(t, got.Places)
	})

	t.Run("place may reference a video appended earlier", func(t *testing.T) {
		st := New()
		s := st.Create()

		_, err := st.AppendVideosAndPlaces(s.ID, []*core.Video{testVideo("v1")}, nil)
		require.NoError(t, err)

		snap, err := st.AppendVideosAndPlaces(s.ID, nil, []*core.Place{testPlace("v1", "Later")})
		require.NoError(t, err)
		assert.Len(t, snap.Places, 1)
	})

	t.Run("rejects duplicate video ids", func(t *testing.T) {
		st := New()
		s := st.Create()

		_, err := st.AppendVideosAndPlaces(s.ID, []*core.Video{testVideo("v1")}, nil)
		require.NoError(t, err)

		_, err = st.AppendVideosAndPlaces(s.ID, []*core.Video{testVideo("v1")}, nil)
		assert.ErrorIs(t, err, core.ErrValidation)
	})

	t.Run("skips places whose id already exists", func(t *testing.T) {
		st := New()
		s := st.Create()

		place := testPlace("v1", "El Sol")
		_, err := st.AppendVideosAndPlaces(s.ID, []*core.Video{testVideo("v1")}, []*core.Place{place})
		require.NoError(t, err)

		again := testPlace("v1", "El Sol")
		again.Description = "different description, same identity"
		snap, err := st.AppendVideosAndPlaces(s.ID, []*core.Video{testVideo("v2")}, []*core.Place{again})
		require.NoError(t, err)
		require.Len(t, snap.Places, 1)
		assert.Empty(t, snap.Places[0].Description)
	})

	t.Run("unknown session", func(t *testing.T) {
		st := New()
		_, err := st.AppendVideosAndPlaces("missing", []*core.Video{testVideo("v1")}, nil)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestAppendChatTurn(t *testing.T) {
	st := New()
	s := st.Create()
	_, err := st.AppendVideosAndPlaces(s.ID,
		[]*core.Video{testVideo("v1")},
		[]*core.Place{testPlace("v1", "El Sol")})
	require.NoError(t, err)
	placeID := testPlace("v1", "El Sol").ID

	t.Run("appends valid turns", func(t *testing.T) {
		err := st.AppendChatTurn(s.ID, core.ChatTurn{Role: core.RoleUser, Content: "hi"})
		require.NoError(t, err)

		err = st.AppendChatTurn(s.ID, core.ChatTurn{
			Role:             core.RoleAssistant,
			Content:          "try El Sol",
			PlacesReferenced: []string{placeID},
		})
		require.NoError(t, err)

		got, err := st.Get(s.ID)
		require.NoError(t, err)
		require.Len(t, got.ChatHistory, 2)
		assert.False(t, got.ChatHistory[0].Timestamp.IsZero())
	})

	t.Run("rejects dangling place references", func(t *testing.T) {
		err := st.AppendChatTurn(s.ID, core.ChatTurn{
			Role:             core.RoleAssistant,
			Content:          "answer",
			PlacesReferenced: []string{"nope"},
		})
		assert.ErrorIs(t, err, core.ErrValidation)
	})

	t.Run("rejects invalid turns", func(t *testing.T) {
		err := st.AppendChatTurn(s.ID, core.ChatTurn{Role: core.RoleUser, Content: ""})
		assert.ErrorIs(t, err, core.ErrValidation)
	})
}

func TestUpdatePlacePreference(t *testing.T) {
	st := New()
	s := st.Create()
	place := testPlace("v1", "El Sol")
	_, err := st.AppendVideosAndPlaces(s.ID, []*core.Video{testVideo("v1")}, []*core.Place{place})
	require.NoError(t, err)

	t.Run("updates and returns a copy", func(t *testing.T) {
		updated, err := st.UpdatePlacePreference(s.ID, place.ID, core.PreferenceInterested)
		require.NoError(t, err)
		assert.Equal(t, core.PreferenceInterested, updated.Preference)

		got, err := st.Get(s.ID)
		require.NoError(t, err)
		assert.Equal(t, core.PreferenceInterested, got.Places[0].Preference)
	})

	t.Run("unknown place", func(t *testing.T) {
		_, err := st.UpdatePlacePreference(s.ID, "missing", core.PreferenceInterested)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("invalid preference", func(t *testing.T) {
		_, err := st.UpdatePlacePreference(s.ID, place.ID, "maybe")
		assert.ErrorIs(t, err, core.ErrValidation)
	})
}

func TestExpiry(t *testing.T) {
	t.Run("sweep removes iff the TTL elapsed", func(t *testing.T) {
		clock := newTestClock()
		st := New(WithTTL(time.Hour), WithClock(clock.Now))

		stale := st.Create()
		clock.Advance(minutes(30))
		fresh := st.Create()

		clock.Advance(minutes(30)) // stale at exactly TTL, fresh at 30m
		assert.Equal(t, 1, st.SweepExpired())

		_, err := st.Get(stale.ID)
		assert.ErrorIs(t, err, core.ErrNotFound)
		_, err = st.Get(fresh.ID)
		assert.NoError(t, err)
	})

	t.Run("activity refreshes the window", func(t *testing.T) {
		clock := newTestClock()
		st := New(WithTTL(time.Hour), WithClock(clock.Now))

		s := st.Create()
		clock.Advance(minutes(59))
		_, err := st.Get(s.ID) // read counts as activity
		require.NoError(t, err)

		clock.Advance(minutes(59))
		assert.Equal(t, 0, st.SweepExpired())
	})

	t.Run("expired session observed on access is removed", func(t *testing.T) {
		clock := newTestClock()
		st := New(WithTTL(time.Hour), WithClock(clock.Now))

		s := st.Create()
		clock.Advance(2 * time.Hour)

		_, err := st.Get(s.ID)
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.Equal(t, 0, st.Len())
	})

	t.Run("background sweep runs on the ticker", func(t *testing.T) {
		clock := newTestClock()
		st := New(WithTTL(time.Millisecond), WithSweepInterval(10*time.Millisecond), WithClock(clock.Now))
		st.Create()
		clock.Advance(time.Second)

		st.Start()
		defer st.Stop()

		assert.Eventually(t, func() bool { return st.Len() == 0 }, time.Second, 5*time.Millisecond)
	})
}

func TestConcurrency(t *testing.T) {
	t.Run("same-session appends never corrupt history", func(t *testing.T) {
		st := New()
		s := st.Create()

		const writers = 8
		const perWriter = 25
		var wg sync.WaitGroup
		for w := 0; w < writers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < perWriter; i++ {
					err := st.AppendChatTurn(s.ID, core.ChatTurn{
						Role:    core.RoleUser,
						Content: fmt.Sprintf("writer %d message %d", w, i),
					})
					assert.NoError(t, err)
				}
			}(w)
		}
		wg.Wait()

		got, err := st.Get(s.ID)
		require.NoError(t, err)
		require.Len(t, got.ChatHistory, writers*perWriter)
		for _, turn := range got.ChatHistory {
			assert.NotEmpty(t, turn.Content)
		}
	})

	t.Run("different sessions do not block each other", func(t *testing.T) {
		st := New()
		a := st.Create()
		b := st.Create()

		var wg sync.WaitGroup
		for _, id := range []string{a.ID, b.ID} {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					_, err := st.Get(id)
					assert.NoError(t, err)
				}
			}(id)
		}
		wg.Wait()
	})

	t.Run("sweep is safe alongside operations", func(t *testing.T) {
		clock := newTestClock()
		st := New(WithTTL(time.Hour), WithClock(clock.Now))
		s := st.Create()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				st.SweepExpired()
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, _ = st.Get(s.ID)
			}
		}()
		wg.Wait()
	})
}

func TestSnapshotsAreCopies(t *testing.T) {
	st := New()
	s := st.Create()
	_, err := st.AppendVideosAndPlaces(s.ID,
		[]*core.Video{testVideo("v1")},
		[]*core.Place{testPlace("v1", "El Sol")})
	require.NoError(t, err)

	snap, err := st.Get(s.ID)
	require.NoError(t, err)
	snap.Places[0].Name = "Mutated"
	snap.Videos[0].Title = "Mutated"

	again, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "El Sol", again.Places[0].Name)
	assert.Equal(t, "Video v1", again.Videos[0].Title)
}

// minutes converts minutes to a duration, keeping expiry tests readable.
func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
