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


package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/wanderlens/wanderlens/core"
)

type ingestRequest struct {
	SessionID string   `json:"session_id,omitempty"`
	Provider  string   `json:"provider,omitempty"`
	VideoIDs  []string `json:"video_ids"`
}

type ingestResponse struct {
	SessionID   string            `json:"session_id"`
	Videos      []videoSummary    `json:"videos"`
	Errors      map[string]string `json:"errors,omitempty"`
	TotalPlaces int               `json:"total_places"`
}

type videoSummary struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	PlacesCount int    `json:"places_count"`
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Provider  string `json:"provider,omitempty"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Answer           string        `json:"answer"`
	PlacesReferenced []string      `json:"places_referenced"`
	Sources          []core.Source `json:"sources"`
	Degraded         bool          `json:"degraded"`
}

type preferenceRequest struct {
	SessionID  string `json:"session_id"`
	PlaceID    string `json:"place_id"`
	Preference string `json:"preference"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	report, err := s.engine.Ingest(r.Context(), req.SessionID, s.provider(req.Provider), req.VideoIDs)
	if err != nil {
		s.writeTaxonomyError(w, err)
		return
	}

	resp := ingestResponse{
		SessionID:   report.SessionID,
		Videos:      make([]videoSummary, len(report.Videos)),
		Errors:      report.Errors,
		TotalPlaces: report.TotalPlaces,
	}
	for i, v := range report.Videos {
		resp.Videos[i] = videoSummary{
			VideoID:     v.VideoID,
			Title:       v.Title,
			Summary:     v.Summary,
			PlacesCount: v.PlacesCount,
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	reply, err := s.engine.Chat(r.Context(), req.SessionID, s.provider(req.Provider), req.Message)
	if err != nil {
		s.writeTaxonomyError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, chatResponse{
		Answer:           reply.Answer,
		PlacesReferenced: reply.PlacesReferenced,
		Sources:          reply.Sources,
		Degraded:         reply.Degraded,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.engine.GetSession(mux.Vars(r)["id"])
	if err != nil {
		s.writeTaxonomyError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.DeleteSession(mux.Vars(r)["id"]); err != nil {
		s.writeTaxonomyError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdatePreference(w http.ResponseWriter, r *http.Request) {
	var req preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	place, err := s.engine.UpdatePlacePreference(req.SessionID, req.PlaceID, req.Preference)
	if err != nil {
		s.writeTaxonomyError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, place)
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"providers": s.engine.Providers()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// provider resolves the request's provider selector, defaulting to the
// first registered provider.
func (s *Server) provider(requested string) string {
	if requested != "" {
		return requested
	}
	if providers := s.engine.Providers(); len(providers) > 0 {
		return providers[0]
	}
	return ""
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeTaxonomyError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeError(w, status, err.Error())
}
