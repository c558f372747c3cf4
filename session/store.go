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


// Package session implements the concurrency-safe in-memory session
// store with TTL-based expiry.
//
// Operations on one session id are serialized by a per-session mutex;
// operations on different session ids proceed independently. The session
// map itself is guarded separately from per-session content, so sweeping
// one session never contends with reading another. Sessions live only in
// memory: a process restart loses all of them, by design.
package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wanderlens/wanderlens/core"
)

const (
	// DefaultTTL is the inactivity window after which a session expires.
	DefaultTTL = time.Hour

	// DefaultSweepInterval is how often the background sweep runs.
	DefaultSweepInterval = 5 * time.Minute
)

// entry pairs a session with its serialization lock. gone marks entries
// whose id has been removed from the map while a waiter held a stale
// pointer; waiters re-check it after locking.
type entry struct {
	mu   sync.Mutex
	gone bool
	s    *core.Session
}

// Store is the session registry. The zero value is not usable; use New.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	ttl        time.Duration
	sweepEvery time.Duration
	clock      func() time.Time
	logger     *slog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	swept     sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the inactivity window after which sessions expire.
func WithTTL(ttl time.Duration) Option {
	return func(st *Store) {
		if ttl > 0 {
			st.ttl = ttl
		}
	}
}

// WithSweepInterval sets how often the background sweep runs.
func WithSweepInterval(d time.Duration) Option {
	return func(st *Store) {
		if d > 0 {
			st.sweepEvery = d
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(st *Store) {
		if clock != nil {
			st.clock = clock
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(st *Store) {
		if logger != nil {
			st.logger = logger
		}
	}
}

// New creates a session store. The background sweep does not run until
// Start is called; SweepExpired can always be invoked directly.
func New(opts ...Option) *Store {
	st := &Store{
		sessions:   make(map[string]*entry),
		ttl:        DefaultTTL,
		sweepEvery: DefaultSweepInterval,
		clock:      time.Now,
		logger:     slog.Default().With("component", "session-store"),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Start launches the background sweep goroutine. Safe to call once;
// subsequent calls are no-ops.
func (st *Store) Start() {
	st.startOnce.Do(func() {
		st.swept.Add(1)
		go func() {
			defer st.swept.Done()
			ticker := time.NewTicker(st.sweepEvery)
			defer ticker.Stop()
			for {
				select {
				case <-st.done:
					return
				case <-ticker.C:
					if n := st.SweepExpired(); n > 0 {
						st.logger.Info("swept expired sessions", "count", n)
					}
				}
			}
		}()
		st.logger.Debug("session store started", "ttl", st.ttl, "sweepEvery", st.sweepEvery)
	})
}

// Stop halts the background sweep and waits for it to exit.
func (st *Store) Stop() {
	st.stopOnce.Do(func() {
		close(st.done)
		st.swept.Wait()
		st.logger.Debug("session store stopped")
	})
}

// Create registers a new empty session and returns a snapshot of it.
func (st *Store) Create() *core.Session {
	now := st.clock()
	s := &core.Session{
		ID:           core.NewSessionID(),
		CreatedAt:    now,
		LastActivity: now,
	}
	st.mu.Lock()
	st.sessions[s.ID] = &entry{s: s}
	st.mu.Unlock()
	st.logger.Info("created session", "session", s.ID)
	return cloneSession(s)
}

// Get returns a snapshot of the session. A session whose inactivity
// window has elapsed is removed and reported as not found. Reading a
// live session counts as activity.
func (st *Store) Get(id string) (*core.Session, error) {
	var snap *core.Session
	err := st.withSession(id, func(s *core.Session) error {
		snap = cloneSession(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Delete removes a session. Returns core.ErrNotFound for unknown ids.
func (st *Store) Delete(id string) error {
	st.mu.RLock()
	e, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return notFound(id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone {
		return notFound(id)
	}
	e.gone = true
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
	st.logger.Info("deleted session", "session", id)
	return nil
}

// AppendVideosAndPlaces attaches videos and their extracted places to a
// session and returns a snapshot of the updated session.
//
// Every place's VideoID must resolve to a video already in the session or
// in the appended batch: a dangling reference fails the whole append with
// core.ErrValidation and leaves the session untouched. A place whose id
// is already present (the same mention re-extracted) is skipped, keeping
// the first occurrence, mirroring the extraction dedup policy.
func (st *Store) AppendVideosAndPlaces(id string, videos []*core.Video, places []*core.Place) (*core.Session, error) {
	var snap *core.Session
	err := st.withSession(id, func(s *core.Session) error {
		for _, v := range videos {
			if s.VideoByID(v.ID) != nil {
				return fmt.Errorf("%w: video %s already in session %s", core.ErrValidation, v.ID, id)
			}
		}
		resolves := func(videoID string) bool {
			if s.VideoByID(videoID) != nil {
				return true
			}
			for _, v := range videos {
				if v.ID == videoID {
					return true
				}
			}
			return false
		}
		for _, p := range places {
			if err := core.ValidatePlace(p); err != nil {
				return err
			}
			if !resolves(p.VideoID) {
				return fmt.Errorf("%w: place %q references video %s not present in session %s",
					core.ErrValidation, p.Name, p.VideoID, id)
			}
		}

		for _, v := range videos {
			vc := *v
			s.Videos = append(s.Videos, &vc)
		}
		for _, p := range places {
			if s.PlaceByID(p.ID) != nil {
				continue
			}
			pc := *p
			if pc.Preference == "" {
				pc.Preference = core.PreferenceNeutral
			}
			if pc.CreatedAt.IsZero() {
				pc.CreatedAt = st.clock()
			}
			s.Places = append(s.Places, &pc)
		}
		snap = cloneSession(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// AppendChatTurn appends one turn to the session's chat history. Every
// referenced place id must resolve inside the session.
func (st *Store) AppendChatTurn(id string, turn core.ChatTurn) error {
	return st.withSession(id, func(s *core.Session) error {
		if err := core.ValidateChatTurn(&turn); err != nil {
			return err
		}
		for _, pid := range turn.PlacesReferenced {
			if s.PlaceByID(pid) == nil {
				return fmt.Errorf("%w: chat turn references place %s not present in session %s",
					core.ErrValidation, pid, id)
			}
		}
		if turn.Timestamp.IsZero() {
			turn.Timestamp = st.clock()
		}
		s.ChatHistory = append(s.ChatHistory, cloneTurn(turn))
		return nil
	})
}

// UpdatePlacePreference patches the preference flag of a place, the only
// mutation a place supports after creation. Returns a copy of the
// updated place, or core.ErrNotFound if the place is unknown.
func (st *Store) UpdatePlacePreference(id, placeID string, pref core.Preference) (*core.Place, error) {
	if _, err := core.ParsePreference(string(pref)); err != nil {
		return nil, err
	}
	var updated *core.Place
	err := st.withSession(id, func(s *core.Session) error {
		p := s.PlaceByID(placeID)
		if p == nil {
			return fmt.Errorf("%w: place %s in session %s", core.ErrNotFound, placeID, id)
		}
		p.Preference = pref
		pc := *p
		updated = &pc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SweepExpired removes every session whose last activity is at least the
// TTL ago and returns how many were removed. Safe to run concurrently
// with any in-flight session operation.
func (st *Store) SweepExpired() int {
	now := st.clock()
	st.mu.RLock()
	snapshot := make(map[string]*entry, len(st.sessions))
	for id, e := range st.sessions {
		snapshot[id] = e
	}
	st.mu.RUnlock()

	removed := 0
	for id, e := range snapshot {
		e.mu.Lock()
		if !e.gone && now.Sub(e.s.LastActivity) >= st.ttl {
			e.gone = true
			st.mu.Lock()
			delete(st.sessions, id)
			st.mu.Unlock()
			removed++
			st.logger.Debug("swept expired session", "session", id)
		}
		e.mu.Unlock()
	}
	return removed
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// withSession runs fn with the session's lock held. Expired sessions are
// removed on access. LastActivity is refreshed only when fn succeeds.
// The lock is released on every exit path.
func (st *Store) withSession(id string, fn func(s *core.Session) error) error {
	st.mu.RLock()
	e, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return notFound(id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone {
		return notFound(id)
	}

	now := st.clock()
	if now.Sub(e.s.LastActivity) >= st.ttl {
		e.gone = true
		st.mu.Lock()
		delete(st.sessions, id)
		st.mu.Unlock()
		st.logger.Info("session expired on access", "session", id)
		return fmt.Errorf("%w: session %s expired", core.ErrNotFound, id)
	}

	if err := fn(e.s); err != nil {
		return err
	}
	e.s.LastActivity = now
	return nil
}

func notFound(id string) error {
	return fmt.Errorf("%w: session %s", core.ErrNotFound, id)
}

func cloneSession(s *core.Session) *core.Session {
	out := &core.Session{
		ID:           s.ID,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
	}
	out.Videos = make([]*core.Video, len(s.Videos))
	for i, v := range s.Videos {
		vc := *v
		out.Videos[i] = &vc
	}
	out.Places = make([]*core.Place, len(s.Places))
	for i, p := range s.Places {
		pc := *p
		out.Places[i] = &pc
	}
	out.ChatHistory = make([]core.ChatTurn, len(s.ChatHistory))
	for i, t := range s.ChatHistory {
		out.ChatHistory[i] = cloneTurn(t)
	}
	return out
}

func cloneTurn(t core.ChatTurn) core.ChatTurn {
	out := t
	if t.PlacesReferenced != nil {
		out.PlacesReferenced = append([]string(nil), t.PlacesReferenced...)
	}
	if t.Sources != nil {
		out.Sources = append([]core.Source(nil), t.Sources...)
	}
	return out
}
