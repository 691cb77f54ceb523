package payee

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "payees-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/payees",
		Summary:     "List payees",
		Description: "Payees are collected from booked transactions, most used first.",
		Tags:        []string{"payees"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.middleware,
	}
}
