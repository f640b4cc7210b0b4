package workers

import (
	"context"
	"log/slog"
	"time"
)

type SessionEvictor interface {
	EvictExpired() int
	Len() int
}

type sessionJanitor struct {
	sessions SessionEvictor
	interval time.Duration
}

func NewSessionJanitor(sessions SessionEvictor, interval time.Duration) (*sessionJanitor, error) {
	if interval <= 0 {
		interval = time.Hour
	}

	return &sessionJanitor{
		sessions: sessions,
		interval: interval,
	}, nil
}

func (s *sessionJanitor) Name() string { return "session_janitor" }

func (s *sessionJanitor) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", s.Name(), "interval", s.interval)
	defer slog.Info("Worker stopped", "name", s.Name())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := s.sessions.EvictExpired(); removed > 0 {
				slog.Info("Evicted idle sessions", "count", removed, "remaining", s.sessions.Len())
			}
		}
	}
}
