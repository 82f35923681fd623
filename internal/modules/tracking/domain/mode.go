package domain

// Mode is the input mode of the tracker: Normal or EditingNote.
type Mode interface {
	isMode()
}

type Normal struct{}

// NoteTarget names the session whose note is being edited. History is set
// when the edit was started from the day table rather than the active session.
type NoteTarget struct {
	SessionID string
	History   bool
}

type EditingNote struct {
	Target NoteTarget
	Buffer string
}

func (Normal) isMode()      {}
func (EditingNote) isMode() {}
