package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"worklog/internal/modules/tracking/domain"
	trackingout "worklog/internal/modules/tracking/port/out"
)

// JSONSessionStore keeps the whole log as one pretty-printed JSON array.
type JSONSessionStore struct {
	path string
}

func NewJSONSessionStore(path string) trackingout.SessionRepository {
	return &JSONSessionStore{path: path}
}

func (s *JSONSessionStore) Load(_ context.Context) ([]domain.Session, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Session{}, nil
		}
		return nil, fmt.Errorf("read session log: %w", err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return []domain.Session{}, nil
	}
	sessions := []domain.Session{}
	if err := json.Unmarshal(payload, &sessions); err != nil {
		return nil, fmt.Errorf("decode session log %s: %w", s.path, err)
	}
	for i, session := range sessions {
		if err := session.Validate(); err != nil {
			return nil, fmt.Errorf("decode session log %s: entry %d: %w", s.path, i, err)
		}
	}
	return sessions, nil
}

// Save rewrites the file through a sibling temp file so a crash never leaves
// a truncated log behind.
func (s *JSONSessionStore) Save(_ context.Context, sessions []domain.Session) error {
	if sessions == nil {
		sessions = []domain.Session{}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session log dir: %w", err)
	}
	payload, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session log: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write session log: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace session log: %w", err)
	}
	return nil
}
