// Package server exposes the sales agent over HTTP. Each customer
// session gets its own agent; sessions are isolated and their turns are
// serialized, matching the agent's sequential-turn design.
package server

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	agentx "github.com/rndas/wallie/agent"
)

var ErrSessionNotFound = errors.New("session not found")

// GoodbyeReply closes a session on an explicit termination utterance.
const GoodbyeReply = "Thank you for shopping with us! Goodbye!"

// Termination utterances recognized by the surrounding loop, not by the
// dialogue core.
var terminations = map[string]struct{}{
	"bye":     {},
	"goodbye": {},
	"end":     {},
	"quit":    {},
	"exit":    {},
	"bye-bye": {},
}

// IsTermination reports whether an utterance ends the session outright.
func IsTermination(text string) bool {
	_, ok := terminations[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// AgentFactory builds a fresh agent for a new session.
type AgentFactory func(ctx context.Context) (*agentx.Agent, error)

type session struct {
	mu    sync.Mutex
	agent *agentx.Agent
}

type Manager struct {
	mu       sync.Mutex
	factory  AgentFactory
	sessions map[string]*session
}

func NewManager(factory AgentFactory) *Manager {
	return &Manager{
		factory:  factory,
		sessions: make(map[string]*session),
	}
}

type CreateResult struct {
	SessionID string
	Greeting  string
}

type TurnResult struct {
	Reply string
	Phase string
	Done  bool
}

// Create starts a new session and returns its greeting.
func (m *Manager) Create(ctx context.Context) (CreateResult, error) {
	a, err := m.factory(ctx)
	if err != nil {
		return CreateResult{}, err
	}

	greeting, err := a.Greet(ctx)
	if err != nil {
		return CreateResult{}, err
	}

	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = &session{agent: a}
	m.mu.Unlock()

	return CreateResult{SessionID: id, Greeting: greeting}, nil
}

// Turn runs one utterance through a session. A termination utterance or
// a fired checkout ends the session and removes it from the manager.
func (m *Manager) Turn(ctx context.Context, sessionID string, text string) (TurnResult, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return TurnResult{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if IsTermination(text) {
		m.remove(sessionID)
		return TurnResult{
			Reply: GoodbyeReply,
			Phase: string(s.agent.Phase()),
			Done:  true,
		}, nil
	}

	reply, err := s.agent.ProcessTurn(ctx, text)
	if err != nil {
		return TurnResult{}, err
	}

	done := !s.agent.Running()
	if done {
		m.remove(sessionID)
	}

	return TurnResult{
		Reply: reply,
		Phase: string(s.agent.Phase()),
		Done:  done,
	}, nil
}

func (m *Manager) remove(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Len reports the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
