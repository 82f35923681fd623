package usecase

import (
	"context"
	"log/slog"
	"time"

	"worklog/internal/modules/tracking/domain"
	"worklog/internal/modules/tracking/dto"
	trackingin "worklog/internal/modules/tracking/port/in"
	"worklog/internal/modules/tracking/service"
	"worklog/internal/platform/logging"
)

// Interactor drives the Tracker from dashboard intents. Save failures are
// logged and dropped; the in-memory log stays authoritative.
type Interactor struct {
	tracker *service.Tracker
	logger  *slog.Logger
}

func NewInteractor(tracker *service.Tracker, logger *slog.Logger) trackingin.Dashboard {
	return &Interactor{tracker: tracker, logger: logging.OrDiscard(logger)}
}

// Boot loads the log and opens an Idle session. Only the load can fail.
func (i *Interactor) Boot(ctx context.Context) error {
	if err := i.tracker.Load(ctx); err != nil {
		return err
	}
	i.logger.Info("session log loaded", "sessions", len(i.tracker.Sessions()), "date", i.tracker.Date().String())
	i.warn("boot", i.tracker.StartNewSession(ctx, domain.KindIdle))
	return nil
}

func (i *Interactor) Apply(ctx context.Context, intent dto.Intent) {
	t := i.tracker
	switch intent.Kind {
	case dto.IntentTick:
		t.Tick()
	case dto.IntentToggle:
		i.warn("toggle", t.ToggleWorkBreak(ctx))
	case dto.IntentStop:
		i.warn("stop", t.StopWorking(ctx))
	case dto.IntentPrevDay:
		t.ChangeDate(-1)
	case dto.IntentNextDay:
		t.ChangeDate(1)
	case dto.IntentSelectNext:
		t.SelectNext()
	case dto.IntentSelectPrev:
		t.SelectPrev()
	case dto.IntentClearSelection:
		t.ClearSelection()
	case dto.IntentDeleteSelected:
		i.warn("delete", t.DeleteSelected(ctx))
	case dto.IntentEditCurrent:
		t.BeginEditCurrent()
	case dto.IntentEditSelected:
		t.EditSelected()
	case dto.IntentCommitEdit:
		i.warn("edit note", t.CommitEdit(ctx))
	case dto.IntentCancelEdit:
		t.CancelEdit()
	case dto.IntentInsertRune:
		t.AppendRune(intent.Rune)
	case dto.IntentBackspace:
		t.Backspace()
	}
	if intent.Kind != dto.IntentTick && intent.Kind != dto.IntentInsertRune {
		i.logger.Debug("intent applied", "intent", int(intent.Kind), "sessions", len(t.Sessions()))
	}
}

func (i *Interactor) Snapshot(_ context.Context) dto.Snapshot {
	t := i.tracker
	now := t.Now()
	stats := t.Stats()
	snap := dto.Snapshot{
		Now:      now.In(t.Location()),
		Date:     t.Date().String(),
		IsToday:  t.IsToday(),
		Work:     stats.Work,
		Break:    stats.Break,
		Ratio:    stats.WorkRatio(),
		Selected: t.Selected(),
		Frame:    t.Frame(),
	}
	current, ok := t.Current()
	if ok {
		snap.Active = toView(current, now, t.Location())
		snap.HasActive = true
	}
	for idx, s := range t.DayRows() {
		snap.Rows = append(snap.Rows, dto.Row{
			SessionView: toView(s, now, t.Location()),
			Active:      ok && s.ID == current.ID,
			Selected:    idx == snap.Selected,
		})
	}
	if edit, editing := t.Mode().(domain.EditingNote); editing {
		snap.Editing = true
		snap.EditingPast = edit.Target.History
		snap.Buffer = edit.Buffer
	}
	return snap
}

func (i *Interactor) warn(action string, err error) {
	if err != nil {
		i.logger.Warn("save after "+action+" failed", "error", err)
	}
}

// toView converts timestamps to loc so callers can format them directly.
func toView(s domain.Session, now time.Time, loc *time.Location) dto.SessionView {
	view := dto.SessionView{
		ID:       s.ID,
		Kind:     string(s.Kind),
		Label:    s.Kind.Label(),
		Start:    s.StartTime.In(loc),
		Duration: s.Duration(now),
		Note:     s.Note,
	}
	if s.EndTime != nil {
		end := s.EndTime.In(loc)
		view.End = &end
	}
	return view
}
