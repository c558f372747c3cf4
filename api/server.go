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


// Package api exposes the engine over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/wanderlens/wanderlens/agent"
	"github.com/wanderlens/wanderlens/core"
)

// Engine is the subset of engine operations the HTTP layer exposes.
type Engine interface {
	Ingest(ctx context.Context, sessionID, providerID string, videoIDs []string) (*core.IngestReport, error)
	Chat(ctx context.Context, sessionID, providerID, message string) (*agent.Reply, error)
	GetSession(sessionID string) (*core.Session, error)
	DeleteSession(sessionID string) error
	UpdatePlacePreference(sessionID, placeID, preference string) (*core.Place, error)
	Providers() []string
}

// Server wraps the engine with a gorilla/mux router.
type Server struct {
	engine Engine
	router *mux.Router
	logger *slog.Logger
}

// NewServer creates the HTTP server glue.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine: engine,
		router: mux.NewRouter(),
		logger: slog.Default().With("component", "api"),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ingest", s.handleIngest).Methods(http.MethodPost)
	api.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/places/preference", s.handleUpdatePreference).Methods(http.MethodPut)
	api.HandleFunc("/providers", s.handleProviders).Methods(http.MethodGet)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.router.ServeHTTP(w, r)
	s.logger.Debug("request handled",
		"method", r.Method,
		"path", r.URL.Path,
		"duration", time.Since(start))
}
