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
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/wanderlens/wanderlens/ai"
	"github.com/wanderlens/wanderlens/core"
)

// defaultMaxRounds caps the plan/tool cycle per chat call.
const defaultMaxRounds = 5

// citationPattern matches inline [place:ID] citation markers.
var citationPattern = regexp.MustCompile(`\[place:([0-9a-f]+)\]`)

// citationStrip removes a marker along with the whitespace that
// usually precedes it, so "El Sol [place:ab]." reads "El Sol.".
var citationStrip = regexp.MustCompile(`\s*\[place:[0-9a-f]+\]`)

// spaceRun matches runs of spaces left behind by stripped markers.
var spaceRun = regexp.MustCompile(`[ \t]{2,}`)

// SessionStore is the subset of session store operations the agent needs.
type SessionStore interface {
	Get(id string) (*core.Session, error)
	AppendChatTurn(id string, turn core.ChatTurn) error
}

// Invoker dispatches a request to a named provider. *ai.Gateway
// implements it.
type Invoker interface {
	Invoke(ctx context.Context, providerID string, req *ai.Request) (*ai.Result, error)
}

// Reply is the outcome of one chat call.
type Reply struct {
	// Answer is the assistant's text with citation markers stripped.
	Answer string

	// PlacesReferenced holds the validated cited place ids, in first
	// citation order.
	PlacesReferenced []string

	// Sources are the distinct originating videos of the cited places.
	Sources []core.Source

	// Degraded is set when the round cap forced a best-effort finish.
	Degraded bool
}

// Agent runs the grounded chat loop against a session.
type Agent struct {
	store     SessionStore
	invoker   Invoker
	maxRounds int
	logger    *slog.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithMaxRounds overrides the plan/tool round cap.
func WithMaxRounds(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxRounds = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAgent creates a chat agent.
func NewAgent(store SessionStore, invoker Invoker, opts ...Option) (*Agent, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if invoker == nil {
		return nil, ErrGatewayRequired
	}
	a := &Agent{
		store:     store,
		invoker:   invoker,
		maxRounds: defaultMaxRounds,
		logger:    slog.Default().With("component", "agent"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Respond runs one chat turn for a session.
//
// The user turn is persisted before the loop starts; on provider
// failure the assistant side is simply absent from the history. The
// returned reply's cited place ids are guaranteed to exist in the
// session.
func (a *Agent) Respond(ctx context.Context, sessionID, providerID, message string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: empty chat message", core.ErrValidation)
	}

	session, err := a.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	userTurn := core.ChatTurn{
		Role:      core.RoleUser,
		Content:   message,
		Timestamp: time.Now().UTC(),
	}
	if err := a.store.AppendChatTurn(sessionID, userTurn); err != nil {
		return nil, err
	}

	messages := a.buildMessages(session, message)
	tools := chatTools()

	var answer string
	degraded := false
	for round := 0; ; round++ {
		if round == a.maxRounds {
			// Round cap hit: force a finish without tools.
			messages = append(messages, ai.Message{Role: ai.RoleUser, Content: degradedFinishPrompt})
			res, err := a.invoker.Invoke(ctx, providerID, &ai.Request{Messages: messages})
			if err != nil {
				return nil, fmt.Errorf("session %s: chat failed: %w", sessionID, err)
			}
			answer = res.Content
			degraded = true
			a.logger.Warn("chat round cap reached", "session", sessionID, "rounds", a.maxRounds)
			break
		}

		res, err := a.invoker.Invoke(ctx, providerID, &ai.Request{Messages: messages, Tools: tools})
		if err != nil {
			return nil, fmt.Errorf("session %s: chat failed: %w", sessionID, err)
		}

		if len(res.ToolCalls) == 0 {
			answer = res.Content
			break
		}

		messages = append(messages, ai.Message{
			Role:      ai.RoleAssistant,
			Content:   res.Content,
			ToolCalls: res.ToolCalls,
		})
		for _, call := range res.ToolCalls {
			a.logger.Debug("executing tool", "session", sessionID, "tool", call.Name)
			messages = append(messages, ai.Message{
				Role:       ai.RoleTool,
				Content:    executeTool(session, call),
				ToolCallID: call.ID,
				ToolName:   call.Name,
			})
		}
	}

	reply := a.finish(session, answer)
	reply.Degraded = degraded

	assistantTurn := core.ChatTurn{
		Role:             core.RoleAssistant,
		Content:          reply.Answer,
		Timestamp:        time.Now().UTC(),
		PlacesReferenced: reply.PlacesReferenced,
		Sources:          reply.Sources,
	}
	if err := a.store.AppendChatTurn(sessionID, assistantTurn); err != nil {
		return nil, err
	}

	a.logger.Info("chat turn completed",
		"session", sessionID,
		"places_referenced", len(reply.PlacesReferenced),
		"degraded", reply.Degraded)

	return reply, nil
}

// buildMessages assembles the working transcript: system prompt, the
// recent history window, and the new user message.
func (a *Agent) buildMessages(session *core.Session, userMessage string) []ai.Message {
	messages := []ai.Message{{Role: ai.RoleSystem, Content: buildChatSystemPrompt(session)}}

	history := session.ChatHistory
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, turn := range history {
		role := ai.RoleUser
		if turn.Role == core.RoleAssistant {
			role = ai.RoleAssistant
		}
		messages = append(messages, ai.Message{Role: role, Content: turn.Content})
	}

	return append(messages, ai.Message{Role: ai.RoleUser, Content: userMessage})
}

// finish validates the answer's citations against the session and
// strips the markers from the user-visible text.
func (a *Agent) finish(session *core.Session, answer string) *Reply {
	var placeIDs []string
	cited := make(map[string]bool)
	for _, match := range citationPattern.FindAllStringSubmatch(answer, -1) {
		id := match[1]
		if cited[id] {
			continue
		}
		cited[id] = true
		if session.PlaceByID(id) == nil {
			a.logger.Warn("dropping citation of unknown place", "place", id)
			continue
		}
		placeIDs = append(placeIDs, id)
	}

	clean := citationStrip.ReplaceAllString(answer, "")
	clean = spaceRun.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)

	var sources []core.Source
	sourced := make(map[string]bool)
	for _, id := range placeIDs {
		place := session.PlaceByID(id)
		if sourced[place.VideoID] {
			continue
		}
		sourced[place.VideoID] = true
		title := place.VideoID
		if video := session.VideoByID(place.VideoID); video != nil {
			title = video.Title
		}
		sources = append(sources, core.Source{
			VideoID:          place.VideoID,
			Title:            title,
			TimestampSeconds: place.TimestampSeconds,
		})
	}

	return &Reply{Answer: clean, PlacesReferenced: placeIDs, Sources: sources}
}
