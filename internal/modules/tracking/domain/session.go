package domain

import (
	"errors"
	"fmt"
	"time"
)

const SchemaVersion = 1

type Session struct {
	ID        string     `json:"id,omitempty"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Kind      Kind       `json:"session_type"`
	Note      string     `json:"note"`
}

// Validate reports a record missing its start time or session type.
func (s Session) Validate() error {
	if s.StartTime.IsZero() {
		return errors.New("missing start_time")
	}
	if !s.Kind.Valid() {
		return fmt.Errorf("unknown session type %q", s.Kind)
	}
	return nil
}

func (s Session) IsOpen() bool {
	return s.EndTime == nil
}

// Duration is end-start for a closed session and now-start for an open one.
func (s Session) Duration(now time.Time) time.Duration {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	if d := end.Sub(s.StartTime); d > 0 {
		return d
	}
	return 0
}

// Close sets the end time. Closing an already closed session is a no-op.
func (s *Session) Close(at time.Time) {
	if s.EndTime != nil {
		return
	}
	end := at.UTC()
	s.EndTime = &end
}
