// Package session holds the in-memory chat history of one browser session.
package session

import (
	"sync"

	"github.com/dskvich/oracai/pkg/domain"
)

// History is an append-only list of chat messages; insertion order is display order.
type History struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
}

func NewHistory() *History {
	return &History{}
}

// AppendExchange records a user message and the assistant answer to it as one step.
func (h *History) AppendExchange(userText, assistantText string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.appendMessage(domain.RoleUser, userText)
	h.appendMessage(domain.RoleAssistant, assistantText)
}

// appendMessage requires h.mu.
func (h *History) appendMessage(role domain.Role, text string) {
	h.messages = append(h.messages, domain.ChatMessage{Role: role, Text: text})
}

// Messages returns a copy of the history.
func (h *History) Messages() []domain.ChatMessage {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]domain.ChatMessage, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.messages)
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = nil
}
