package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"worklog/internal/modules/tracking/domain"
	"worklog/internal/modules/tracking/dto"
	trackingin "worklog/internal/modules/tracking/port/in"
	trackingout "worklog/internal/modules/tracking/port/out"
	"worklog/internal/modules/tracking/service"
	apperrors "worklog/internal/platform/errors"
	"worklog/internal/platform/logging"
)

type HistoryInteractor struct {
	store     *service.SessionStore
	projector trackingout.SessionProjector
	exporter  trackingout.DayExporter
	loc       *time.Location
	logger    *slog.Logger
}

func NewHistoryInteractor(store *service.SessionStore, projector trackingout.SessionProjector, exporter trackingout.DayExporter, loc *time.Location, logger *slog.Logger) trackingin.History {
	if loc == nil {
		loc = time.Local
	}
	return &HistoryInteractor{store: store, projector: projector, exporter: exporter, loc: loc, logger: logging.OrDiscard(logger)}
}

// Status reads the log without recovery or writes, so a session left open by
// a running dashboard is reported as open.
func (h *HistoryInteractor) Status(ctx context.Context) (dto.StatusOutput, error) {
	sessions, err := h.store.Peek(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	now := h.store.Now()
	today := domain.DateOf(now, h.loc)
	agg := domain.DailyAggregate(sessions, today, h.loc, now)
	out := dto.StatusOutput{
		Date:       today.String(),
		Work:       agg.Work,
		Break:      agg.Break,
		Sessions:   len(sessions),
		TodayCount: len(domain.DayView(sessions, today, h.loc)),
	}
	if n := len(sessions); n > 0 {
		last := sessions[n-1]
		out.Last = toView(last, now, h.loc)
		out.HasLast = true
		out.Open = last.IsOpen()
		out.Stale = last.IsOpen() && now.Sub(last.StartTime) > domain.StaleAfter
	}
	return out, nil
}

// Reindex rebuilds the projection from the recovered log. The state file is
// not rewritten.
func (h *HistoryInteractor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	if h.projector == nil {
		return dto.ReindexOutput{}, fmt.Errorf("session projector is not configured")
	}
	sessions, err := h.store.Load(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	if err := h.projector.Reset(ctx); err != nil {
		return dto.ReindexOutput{}, err
	}
	now := h.store.Now()
	for _, s := range sessions {
		spent := int64(s.Duration(now) / time.Second)
		if err := h.projector.UpsertSession(ctx, s, domain.DateOf(s.StartTime, h.loc), spent); err != nil {
			return dto.ReindexOutput{}, err
		}
	}
	h.logger.Info("projection rebuilt", "sessions", len(sessions))
	return dto.ReindexOutput{Sessions: len(sessions)}, nil
}

// Report lists per-day totals for the last input.Days local days, today
// included. Days without sessions are reported as zero.
func (h *HistoryInteractor) Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	if input.Days <= 0 {
		return dto.ReportOutput{}, fmt.Errorf("days must be positive: %w", apperrors.ErrInvalidInput)
	}
	if _, err := h.Reindex(ctx); err != nil {
		return dto.ReportOutput{}, err
	}
	to := domain.DateOf(h.store.Now(), h.loc)
	from := to.AddDays(-(input.Days - 1))
	totals, err := h.projector.DailyTotals(ctx, from, to)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	byDate := make(map[domain.Date]domain.DayTotals, len(totals))
	for _, t := range totals {
		byDate[t.Date] = t
	}

	out := dto.ReportOutput{From: from.String(), To: to.String()}
	for d := from; !to.Before(d); d = d.AddDays(1) {
		t := byDate[d]
		out.Days = append(out.Days, dto.DayReport{
			Date:     d.String(),
			Work:     t.Totals.Work,
			Break:    t.Totals.Break,
			Sessions: t.Sessions,
		})
		out.Work += t.Totals.Work
		out.Break += t.Totals.Break
	}
	return out, nil
}

// ExportDay writes the journal note of input.Date (today when empty).
func (h *HistoryInteractor) ExportDay(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	if h.exporter == nil {
		return dto.ExportOutput{}, fmt.Errorf("day exporter is not configured")
	}
	now := h.store.Now()
	date := domain.DateOf(now, h.loc)
	if value := strings.TrimSpace(input.Date); value != "" {
		parsed, err := domain.ParseDate(value)
		if err != nil {
			return dto.ExportOutput{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
		}
		date = parsed
	}
	sessions, err := h.store.Load(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	day := domain.LogFor(sessions, date, h.loc, now)
	if len(day.Sessions) == 0 {
		return dto.ExportOutput{}, fmt.Errorf("export %s: %w", date, apperrors.ErrNoSessions)
	}
	path, err := h.exporter.Export(ctx, day)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	h.logger.Info("day exported", "date", date.String(), "path", path)
	return dto.ExportOutput{Path: path, Date: date.String(), Sessions: len(day.Sessions)}, nil
}
