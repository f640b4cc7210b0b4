package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dskvich/oracai/pkg/domain"
)

func TestHistory_Order(t *testing.T) {
	h := NewHistory()
	h.AppendExchange("Hello", "R1")
	h.AppendExchange("What is OCI?", "R2")

	assert.Equal(t, []domain.ChatMessage{
		{Role: domain.RoleUser, Text: "Hello"},
		{Role: domain.RoleAssistant, Text: "R1"},
		{Role: domain.RoleUser, Text: "What is OCI?"},
		{Role: domain.RoleAssistant, Text: "R2"},
	}, h.Messages())
}

func TestHistory_MessagesIsACopy(t *testing.T) {
	h := NewHistory()
	h.AppendExchange("Hello", "Hi")

	msgs := h.Messages()
	msgs[0].Text = "changed"

	assert.Equal(t, "Hello", h.Messages()[0].Text)
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory()
	h.AppendExchange("Hello", "Hi")
	h.Clear()

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Messages())
}

func TestHistory_ConcurrentExchangesStayPaired(t *testing.T) {
	h := NewHistory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.AppendExchange("q", "a")
		}()
	}
	wg.Wait()

	msgs := h.Messages()
	assert.Len(t, msgs, 100)
	for i := 0; i < len(msgs); i += 2 {
		assert.Equal(t, domain.RoleUser, msgs[i].Role)
		assert.Equal(t, domain.RoleAssistant, msgs[i+1].Role)
	}
}
