package in

import (
	"context"

	"worklog/internal/modules/tracking/dto"
)

// Dashboard drives the interactive tracker.
type Dashboard interface {
	Boot(ctx context.Context) error
	Apply(ctx context.Context, intent dto.Intent)
	Snapshot(ctx context.Context) dto.Snapshot
}

// History answers read-side questions about the log.
type History interface {
	Status(ctx context.Context) (dto.StatusOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
	Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
	ExportDay(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
