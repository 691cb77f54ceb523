package budget

import (
	"context"
	"errors"

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
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.assignOp(), h.assign)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	allocations, err := h.service.Allocations(ctx, userID, input.Month)
	if err != nil {
		if errors.Is(err, budget.ErrBadMonth) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}

	return &listOutput{
		Body: listResponse{Allocations: allocations},
	}, nil
}

func (h *Handler) assign(ctx context.Context, input *assignInput) (*statusOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	err := h.service.Assign(ctx, userID, input.CategoryID, input.Body.Month, input.Body.Assigned)
	if err != nil {
		if errors.Is(err, budget.ErrBadMonth) || errors.Is(err, budget.ErrInvalidInput) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}
