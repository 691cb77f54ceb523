package category

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "categories-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"categories"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "categories-create",
		Method:        http.MethodPost,
		Path:          "/api/v1/categories",
		Summary:       "Create a category",
		Tags:          []string{"categories"},
		Security:      []map[string][]string{{"cookie": {}}},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) listGroupsOp() huma.Operation {
	return huma.Operation{
		OperationID: "category-groups-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/category-groups",
		Summary:     "List category groups",
		Tags:        []string{"categories"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createGroupOp() huma.Operation {
	return huma.Operation{
		OperationID:   "category-groups-create",
		Method:        http.MethodPost,
		Path:          "/api/v1/category-groups",
		Summary:       "Create a category group",
		Tags:          []string{"categories"},
		Security:      []map[string][]string{{"cookie": {}}},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}
