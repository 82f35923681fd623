package service

import (
	"context"
	"fmt"
	"time"

	"worklog/internal/modules/tracking/domain"
	trackingout "worklog/internal/modules/tracking/port/out"
	"worklog/internal/platform/clock"
	apperrors "worklog/internal/platform/errors"
	"worklog/internal/platform/id"
)

// SessionStore loads and saves the session log and applies load-time recovery.
type SessionStore struct {
	clock clock.Clock
	idGen id.Generator
	repo  trackingout.SessionRepository
}

func NewSessionStore(clock clock.Clock, idGen id.Generator, repo trackingout.SessionRepository) *SessionStore {
	return &SessionStore{clock: clock, idGen: idGen, repo: repo}
}

// Load returns the log with every open session closed by RecoverStale.
func (s *SessionStore) Load(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.Peek(ctx)
	if err != nil {
		return nil, err
	}
	domain.RecoverStale(sessions, s.clock.Now())
	return sessions, nil
}

// Peek returns the log as stored, open sessions included.
func (s *SessionStore) Peek(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w: %w", apperrors.ErrPersistence, err)
	}
	for i := range sessions {
		if sessions[i].ID == "" {
			sessions[i].ID = s.idGen.New()
		}
	}
	return sessions, nil
}

func (s *SessionStore) Save(ctx context.Context, sessions []domain.Session) error {
	if err := s.repo.Save(ctx, sessions); err != nil {
		return fmt.Errorf("save sessions: %w: %w", apperrors.ErrPersistence, err)
	}
	return nil
}

func (s *SessionStore) Now() time.Time {
	return s.clock.Now()
}

func (s *SessionStore) NewID() string {
	return s.idGen.New()
}
