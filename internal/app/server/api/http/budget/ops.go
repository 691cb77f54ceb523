package budget

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "budget-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/budget",
		Summary:     "List budget allocations for a month",
		Tags:        []string{"budget"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) assignOp() huma.Operation {
	return huma.Operation{
		OperationID: "budget-assign",
		Method:      http.MethodPut,
		Path:        "/api/v1/budget/{categoryId}",
		Summary:     "Assign a budgeted amount",
		Description: "Sets the allocation for the category in the given month, replacing any earlier value.",
		Tags:        []string{"budget"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.middleware,
	}
}
