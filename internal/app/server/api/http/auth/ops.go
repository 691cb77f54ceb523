package auth

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-register",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/register",
		Summary:     "Register a new user",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in and start a session",
		Description: "Issues the session cookie used by all authenticated endpoints.",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Log out and revoke the session",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) meOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-me",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Current user",
		Tags:        []string{"auth"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.authMW,
	}
}

func (h *Handler) changePasswordOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-change-password",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/change-password",
		Summary:     "Change the account password",
		Tags:        []string{"auth"},
		Security:    []map[string][]string{{"cookie": {}}},
		Middlewares: h.authMW,
	}
}
