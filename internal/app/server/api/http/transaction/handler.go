package transaction

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	authmw "budgetkeeper/internal/app/server/api/http/middleware/auth"
	"budgetkeeper/internal/domain/transaction"
)

type Handler struct {
	service    transaction.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service transaction.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
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

	var accountID *int64
	if input.AccountID > 0 {
		accountID = &input.AccountID
	}

	txs, err := h.service.List(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	return &listOutput{
		Body: listResponse{Transactions: txs},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*idOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := h.service.Create(ctx, userID, input.Body.toModel(0), input.IdempotencyKey)
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &idOutput{Body: idResponse{ID: id}}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*idOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Update(ctx, userID, input.Body.toModel(input.ID)); err != nil {
		return nil, mapServiceError(err)
	}

	return &idOutput{Body: idResponse{ID: input.ID}}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*idOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, mapServiceError(err)
	}

	return &idOutput{Body: idResponse{ID: input.ID}}, nil
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		return huma.Error404NotFound("transaction not found")
	case errors.Is(err, transaction.ErrZeroAmount),
		errors.Is(err, transaction.ErrBadDate),
		errors.Is(err, transaction.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return err
	}
}
