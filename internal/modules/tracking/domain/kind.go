package domain

import (
	"encoding/json"
	"fmt"
)

// Kind is the category of a tracked session.
type Kind string

const (
	KindWork  Kind = "Work"
	KindBreak Kind = "Break"
	KindIdle  Kind = "Idle"
)

func (k Kind) Valid() bool {
	switch k {
	case KindWork, KindBreak, KindIdle:
		return true
	}
	return false
}

// Label is the dashboard status text for k.
func (k Kind) Label() string {
	switch k {
	case KindWork:
		return "WORKING"
	case KindBreak:
		return "ON BREAK"
	default:
		return "IDLE"
	}
}

// Next is the kind a toggle switches to: Work and Break alternate, Idle resumes Work.
func (k Kind) Next() Kind {
	if k == KindWork {
		return KindBreak
	}
	return KindWork
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode session type: %w", err)
	}
	kind := Kind(raw)
	if !kind.Valid() {
		return fmt.Errorf("unknown session type %q", raw)
	}
	*k = kind
	return nil
}
