// Package memory holds the per-session conversation transcript and a
// small keyed context bag. The transcript is append-only; only
// rendering is bounded.
package memory

import "strings"

// DefaultHistoryWindow is the number of turns rendered into prompts.
const DefaultHistoryWindow = 6

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleAssistant Role = "assistant"
)

// Turn is one utterance attributed to the customer or the assistant.
type Turn struct {
	Role Role
	Text string
}

type Memory struct {
	turns   []Turn
	context map[string]any
}

func New() *Memory {
	return &Memory{
		context: make(map[string]any, 4),
	}
}

func (m *Memory) AppendUser(text string) {
	m.turns = append(m.turns, Turn{Role: RoleCustomer, Text: text})
}

func (m *Memory) AppendAgent(text string) {
	m.turns = append(m.turns, Turn{Role: RoleAssistant, Text: text})
}

// Turns returns a copy of the transcript, oldest first.
func (m *Memory) Turns() []Turn {
	return append([]Turn(nil), m.turns...)
}

// RenderHistory formats the last maxTurns turns as alternating
// Customer:/Assistant: lines, oldest first. Fewer turns than maxTurns
// renders them all.
func (m *Memory) RenderHistory(maxTurns int) string {
	recent := m.turns
	if maxTurns > 0 && len(recent) > maxTurns {
		recent = recent[len(recent)-maxTurns:]
	}

	var b strings.Builder
	for _, turn := range recent {
		prefix := "Customer"
		if turn.Role == RoleAssistant {
			prefix = "Assistant"
		}
		b.WriteString(prefix)
		b.WriteString(": ")
		b.WriteString(turn.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Memory) SetContext(key string, value any) {
	if m.context == nil {
		m.context = make(map[string]any, 4)
	}
	m.context[key] = value
}

func (m *Memory) GetContext(key string, def any) any {
	if v, ok := m.context[key]; ok {
		return v
	}
	return def
}
