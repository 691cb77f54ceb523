package dashboard

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) statsOp() huma.Operation {
	return huma.Operation{
		OperationID: "dashboard-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard",
		Summary:     "Dashboard aggregates",
		Description: "Headline numbers for the current month: total balance, income, expenses.",
		Tags:        []string{"dashboard"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.middleware,
	}
}
