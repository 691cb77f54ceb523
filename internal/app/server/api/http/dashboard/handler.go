package dashboard

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	authmw "budgetkeeper/internal/app/server/api/http/middleware/auth"
	"budgetkeeper/internal/domain/budget"
)

type Handler struct {
	service    budget.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service budget.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.statsOp(), h.stats)
}

func (h *Handler) stats(ctx context.Context, _ *struct{}) (*statsOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	stats, err := h.service.Dashboard(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &statsOutput{Body: stats}, nil
}
