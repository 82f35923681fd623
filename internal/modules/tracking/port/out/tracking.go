package out

import (
	"context"

	"worklog/internal/modules/tracking/domain"
)

// SessionRepository persists the full session log as one unit.
type SessionRepository interface {
	Load(ctx context.Context) ([]domain.Session, error)
	Save(ctx context.Context, sessions []domain.Session) error
}

// SessionProjector keeps a queryable copy of the log for reports.
type SessionProjector interface {
	Reset(ctx context.Context) error
	UpsertSession(ctx context.Context, session domain.Session, day domain.Date, spent int64) error
	DailyTotals(ctx context.Context, from, to domain.Date) ([]domain.DayTotals, error)
}

type DayExporter interface {
	Export(ctx context.Context, day domain.DayLog) (string, error)
}
