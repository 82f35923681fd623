package service

import (
	"context"
	"slices"
	"time"

	"worklog/internal/modules/tracking/domain"
)

const noSelection = -1

// Tracker owns the in-memory log and every transient piece of dashboard
// state. Mutations are applied in memory first; the returned error only
// reports that the follow-up save failed.
type Tracker struct {
	store    *SessionStore
	loc      *time.Location
	sessions []domain.Session
	current  string
	mode     domain.Mode
	date     domain.Date
	selected int
	stats    domain.Aggregate
	frame    int
}

func NewTracker(store *SessionStore, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{
		store:    store,
		loc:      loc,
		mode:     domain.Normal{},
		selected: noSelection,
	}
}

// Load replaces the in-memory log with the recovered stored one and resets
// the view to today.
func (t *Tracker) Load(ctx context.Context) error {
	sessions, err := t.store.Load(ctx)
	if err != nil {
		return err
	}
	t.sessions = sessions
	t.current = ""
	t.mode = domain.Normal{}
	t.date = t.Today()
	t.selected = noSelection
	t.refresh()
	return nil
}

// StartNewSession closes the current session and opens a new one of kind.
func (t *Tracker) StartNewSession(ctx context.Context, kind domain.Kind) error {
	if t.Editing() {
		return nil
	}
	now := t.store.Now()
	if pos := t.position(t.current); pos >= 0 {
		t.sessions[pos].Close(now)
	}
	session := domain.Session{ID: t.store.NewID(), StartTime: now, Kind: kind}
	t.sessions = append(t.sessions, session)
	t.current = session.ID
	return t.commit(ctx)
}

func (t *Tracker) ToggleWorkBreak(ctx context.Context) error {
	return t.StartNewSession(ctx, t.currentKind().Next())
}

func (t *Tracker) StopWorking(ctx context.Context) error {
	if t.currentKind() == domain.KindIdle {
		return nil
	}
	return t.StartNewSession(ctx, domain.KindIdle)
}

// DeleteEntry removes the session shown at row of the selected day. The
// current session cannot be deleted.
func (t *Tracker) DeleteEntry(ctx context.Context, row int) error {
	if t.Editing() {
		return nil
	}
	pos, ok := domain.ResolveDisplayIndex(t.sessions, t.date, t.loc, row)
	if !ok || t.sessions[pos].ID == t.current {
		return nil
	}
	t.sessions = slices.Delete(t.sessions, pos, pos+1)
	t.selected = noSelection
	return t.commit(ctx)
}

func (t *Tracker) DeleteSelected(ctx context.Context) error {
	if t.selected == noSelection {
		return nil
	}
	return t.DeleteEntry(ctx, t.selected)
}

func (t *Tracker) BeginEditCurrent() {
	if t.Editing() {
		return
	}
	pos := t.position(t.current)
	if pos < 0 {
		return
	}
	t.mode = domain.EditingNote{
		Target: domain.NoteTarget{SessionID: t.current},
		Buffer: t.sessions[pos].Note,
	}
}

func (t *Tracker) BeginEditEntry(row int) {
	if t.Editing() {
		return
	}
	pos, ok := domain.ResolveDisplayIndex(t.sessions, t.date, t.loc, row)
	if !ok {
		return
	}
	t.mode = domain.EditingNote{
		Target: domain.NoteTarget{SessionID: t.sessions[pos].ID, History: true},
		Buffer: t.sessions[pos].Note,
	}
}

func (t *Tracker) EditSelected() {
	if t.selected == noSelection {
		return
	}
	t.BeginEditEntry(t.selected)
}

func (t *Tracker) AppendRune(r rune) {
	if edit, ok := t.mode.(domain.EditingNote); ok {
		edit.Buffer += string(r)
		t.mode = edit
	}
}

func (t *Tracker) Backspace() {
	edit, ok := t.mode.(domain.EditingNote)
	if !ok || edit.Buffer == "" {
		return
	}
	runes := []rune(edit.Buffer)
	edit.Buffer = string(runes[:len(runes)-1])
	t.mode = edit
}

// CommitEdit writes the buffer into the target note and leaves edit mode.
func (t *Tracker) CommitEdit(ctx context.Context) error {
	edit, ok := t.mode.(domain.EditingNote)
	if !ok {
		return nil
	}
	t.mode = domain.Normal{}
	pos := t.position(edit.Target.SessionID)
	if pos < 0 {
		return nil
	}
	t.sessions[pos].Note = edit.Buffer
	return t.commit(ctx)
}

func (t *Tracker) CancelEdit() {
	t.mode = domain.Normal{}
}

func (t *Tracker) ChangeDate(days int) {
	if t.Editing() {
		return
	}
	t.date = t.date.AddDays(days)
	t.selected = noSelection
	t.refresh()
}

// SelectNext moves the cursor down the day table, wrapping at the end.
func (t *Tracker) SelectNext() {
	t.moveSelection(1)
}

// SelectPrev moves the cursor up the day table, wrapping at the top.
func (t *Tracker) SelectPrev() {
	t.moveSelection(-1)
}

func (t *Tracker) ClearSelection() {
	if t.Editing() {
		return
	}
	t.selected = noSelection
}

// Tick advances the animation and keeps today's totals live.
func (t *Tracker) Tick() {
	t.frame++
	if t.IsToday() {
		t.refresh()
	}
}

func (t *Tracker) Sessions() []domain.Session {
	return slices.Clone(t.sessions)
}

func (t *Tracker) Current() (domain.Session, bool) {
	pos := t.position(t.current)
	if pos < 0 {
		return domain.Session{}, false
	}
	return t.sessions[pos], true
}

// DayRows returns the sessions of the selected day, most recent first.
func (t *Tracker) DayRows() []domain.Session {
	positions := domain.DayView(t.sessions, t.date, t.loc)
	rows := make([]domain.Session, 0, len(positions))
	for _, pos := range positions {
		rows = append(rows, t.sessions[pos])
	}
	return rows
}

func (t *Tracker) Mode() domain.Mode {
	return t.mode
}

func (t *Tracker) Editing() bool {
	_, ok := t.mode.(domain.EditingNote)
	return ok
}

func (t *Tracker) Date() domain.Date {
	return t.date
}

func (t *Tracker) Today() domain.Date {
	return domain.DateOf(t.store.Now(), t.loc)
}

func (t *Tracker) IsToday() bool {
	return t.date == t.Today()
}

// Selected is the cursor row, or -1 when nothing is selected.
func (t *Tracker) Selected() int {
	return t.selected
}

func (t *Tracker) Stats() domain.Aggregate {
	return t.stats
}

func (t *Tracker) Frame() int {
	return t.frame
}

func (t *Tracker) Location() *time.Location {
	return t.loc
}

func (t *Tracker) Now() time.Time {
	return t.store.Now()
}

func (t *Tracker) moveSelection(step int) {
	if t.Editing() {
		return
	}
	count := len(domain.DayView(t.sessions, t.date, t.loc))
	if count == 0 {
		return
	}
	if t.selected == noSelection {
		t.selected = 0
		return
	}
	t.selected = ((t.selected+step)%count + count) % count
}

func (t *Tracker) commit(ctx context.Context) error {
	err := t.store.Save(ctx, t.sessions)
	t.refresh()
	return err
}

func (t *Tracker) refresh() {
	t.stats = domain.DailyAggregate(t.sessions, t.date, t.loc, t.store.Now())
	if t.selected >= len(domain.DayView(t.sessions, t.date, t.loc)) {
		t.selected = noSelection
	}
}

func (t *Tracker) currentKind() domain.Kind {
	if s, ok := t.Current(); ok {
		return s.Kind
	}
	return domain.KindIdle
}

func (t *Tracker) position(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(t.sessions, func(s domain.Session) bool { return s.ID == id })
}
