package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dskvich/oracai/pkg/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestRepository(ttl time.Duration) (*sessionRepository, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	repo := NewSessionRepository(ttl)
	repo.now = clock.Now
	return repo, clock
}

func TestSessionRepository_History(t *testing.T) {
	repo, _ := newTestRepository(time.Hour)

	h := repo.History("a")
	h.AppendExchange("Hello", "Hi")

	assert.Same(t, h, repo.History("a"))
	assert.Equal(t, 2, repo.History("a").Len())
	assert.Equal(t, 0, repo.History("b").Len(), "sessions must not share history")
	assert.Equal(t, 2, repo.Len())
}

func TestSessionRepository_Messages(t *testing.T) {
	repo, _ := newTestRepository(time.Hour)

	assert.Nil(t, repo.Messages("a"))
	assert.Equal(t, 0, repo.Len(), "reading must not create a history")

	repo.History("a").AppendExchange("Hello", "Hi")

	assert.Equal(t, []domain.ChatMessage{
		{Role: domain.RoleUser, Text: "Hello"},
		{Role: domain.RoleAssistant, Text: "Hi"},
	}, repo.Messages("a"))
	assert.Nil(t, repo.Messages("b"))
	assert.Equal(t, 1, repo.Len())
}

func TestSessionRepository_MessagesDoesNotExtendLifetime(t *testing.T) {
	repo, clock := newTestRepository(time.Hour)

	repo.History("a").AppendExchange("Hello", "Hi")

	clock.Advance(50 * time.Minute)
	assert.Len(t, repo.Messages("a"), 2)
	clock.Advance(20 * time.Minute)

	assert.Nil(t, repo.Messages("a"), "expired history must not be returned")
	assert.Equal(t, 1, repo.EvictExpired())
	assert.Equal(t, 0, repo.Len())
}

func TestSessionRepository_Delete(t *testing.T) {
	repo, _ := newTestRepository(time.Hour)

	held := repo.History("a")
	held.AppendExchange("Hello", "Hi")
	repo.Delete("a")

	assert.Equal(t, 0, held.Len())

	assert.Equal(t, 0, repo.Len())
	assert.Nil(t, repo.Messages("a"))

	repo.Delete("missing")
}

func TestSessionRepository_Expiry(t *testing.T) {
	repo, clock := newTestRepository(time.Hour)

	repo.History("idle").AppendExchange("Hello", "Hi")
	repo.History("active").AppendExchange("Hello", "Hi")

	clock.Advance(50 * time.Minute)
	repo.History("active")
	clock.Advance(20 * time.Minute)

	assert.Equal(t, 1, repo.EvictExpired())
	assert.Equal(t, 1, repo.Len())
	assert.Len(t, repo.Messages("active"), 2)
}

func TestSessionRepository_ExpiredHistoryIsReplaced(t *testing.T) {
	repo, clock := newTestRepository(time.Minute)

	repo.History("a").AppendExchange("Hello", "Hi")
	clock.Advance(2 * time.Minute)

	assert.Equal(t, 0, repo.History("a").Len())
}

func TestSessionRepository_ZeroTTLNeverExpires(t *testing.T) {
	repo, clock := newTestRepository(0)

	repo.History("a").AppendExchange("Hello", "Hi")
	clock.Advance(365 * 24 * time.Hour)

	assert.Equal(t, 0, repo.EvictExpired())
	assert.Len(t, repo.Messages("a"), 2)
}
