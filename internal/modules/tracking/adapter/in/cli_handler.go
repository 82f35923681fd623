package in

import (
	"context"

	"worklog/internal/modules/tracking/dto"
	trackingin "worklog/internal/modules/tracking/port/in"
)

type CLIHandler struct {
	usecase trackingin.History
}

func NewCLIHandler(usecase trackingin.History) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Report(ctx context.Context, days int) (dto.ReportOutput, error) {
	return h.usecase.Report(ctx, dto.ReportInput{Days: days})
}

func (h CLIHandler) Export(ctx context.Context, date string) (dto.ExportOutput, error) {
	return h.usecase.ExportDay(ctx, dto.ExportInput{Date: date})
}
