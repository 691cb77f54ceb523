package account

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	authmw "budgetkeeper/internal/app/server/api/http/middleware/auth"
	"budgetkeeper/internal/domain/account"
)

type Handler struct {
	service    account.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service account.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	accounts, err := h.service.List(ctx, userID, input.IncludeInactive)
	if err != nil {
		return nil, err
	}

	return &listOutput{
		Body: listResponse{Accounts: accounts},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*idOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := h.service.Create(ctx, userID, input.Body.toModel(0))
	if err != nil {
		if errors.Is(err, account.ErrInvalidInput) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}

	return &idOutput{Body: idResponse{ID: id}}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*idOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	err := h.service.Update(ctx, userID, input.Body.toModel(input.ID))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, huma.Error404NotFound("account not found")
		}
		if errors.Is(err, account.ErrInvalidInput) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}

	return &idOutput{Body: idResponse{ID: input.ID}}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*idOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Deactivate(ctx, userID, input.ID); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, huma.Error404NotFound("account not found")
		}
		return nil, err
	}

	return &idOutput{Body: idResponse{ID: input.ID}}, nil
}
