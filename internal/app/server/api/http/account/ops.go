package account

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "accounts-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts",
		Summary:     "List accounts",
		Tags:        []string{"accounts"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "accounts-create",
		Method:        http.MethodPost,
		Path:          "/api/v1/accounts",
		Summary:       "Create an account",
		Tags:          []string{"accounts"},
		Security:      []map[string][]string{{"cookie": {}}},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "accounts-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/accounts/{id}",
		Summary:     "Update an account",
		Tags:        []string{"accounts"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "accounts-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/accounts/{id}",
		Summary:     "Deactivate an account",
		Description: "Accounts are never hard-deleted; their history stays available.",
		Tags:        []string{"accounts"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.middleware,
	}
}
