package transaction

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "transactions-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/transactions",
		Summary:     "List transactions",
		Tags:        []string{"transactions"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "transactions-create",
		Method:        http.MethodPost,
		Path:          "/api/v1/transactions",
		Summary:       "Book a transaction",
		Description:   "Creates the transaction and moves the account balance. Send an Idempotency-Key header to make replays safe.",
		Tags:          []string{"transactions"},
		Security:      []map[string][]string{{"cookie": {}}},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "transactions-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/transactions/{id}",
		Summary:     "Update a transaction",
		Tags:        []string{"transactions"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "transactions-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/transactions/{id}",
		Summary:     "Delete a transaction",
		Tags:        []string{"transactions"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.middleware,
	}
}
