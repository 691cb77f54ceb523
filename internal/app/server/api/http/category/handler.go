package category

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	authmw "budgetkeeper/internal/app/server/api/http/middleware/auth"
	"budgetkeeper/internal/domain/category"
)

type Handler struct {
	service    category.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service category.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.listGroupsOp(), h.listGroups)
	huma.Register(api, h.createGroupOp(), h.createGroup)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	categories, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &listOutput{
		Body: listResponse{Categories: categories},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*idOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := h.service.Create(ctx, userID, input.Body.toModel())
	if err != nil {
		if errors.Is(err, category.ErrInvalidInput) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}

	return &idOutput{Body: idResponse{ID: id}}, nil
}

func (h *Handler) listGroups(ctx context.Context, _ *struct{}) (*listGroupsOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	groups, err := h.service.ListGroups(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &listGroupsOutput{
		Body: listGroupsResponse{Groups: groups},
	}, nil
}

func (h *Handler) createGroup(ctx context.Context, input *createGroupInput) (*idOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := h.service.CreateGroup(ctx, userID, input.Body.toModel())
	if err != nil {
		if errors.Is(err, category.ErrInvalidInput) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}

	return &idOutput{Body: idResponse{ID: id}}, nil
}
