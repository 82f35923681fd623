package in

import (
	"context"

	"worklog/internal/modules/tracking/dto"
	trackingin "worklog/internal/modules/tracking/port/in"
)

type TUIHandler struct {
	usecase trackingin.Dashboard
}

func NewTUIHandler(usecase trackingin.Dashboard) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Boot(ctx context.Context) error {
	return h.usecase.Boot(ctx)
}

func (h TUIHandler) Send(ctx context.Context, kind dto.IntentKind) {
	h.usecase.Apply(ctx, dto.Intent{Kind: kind})
}

func (h TUIHandler) Type(ctx context.Context, r rune) {
	h.usecase.Apply(ctx, dto.Intent{Kind: dto.IntentInsertRune, Rune: r})
}

func (h TUIHandler) Snapshot(ctx context.Context) dto.Snapshot {
	return h.usecase.Snapshot(ctx)
}
