package payee

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	authmw "budgetkeeper/internal/app/server/api/http/middleware/auth"
	"budgetkeeper/internal/domain/payee"
)

type Handler struct {
	service    payee.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service payee.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	payees, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &listOutput{
		Body: listResponse{Payees: payees},
	}, nil
}
