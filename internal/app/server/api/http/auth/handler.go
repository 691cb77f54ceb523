package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	authmw "budgetkeeper/internal/app/server/api/http/middleware/auth"
	"budgetkeeper/internal/domain/session"
	"budgetkeeper/internal/domain/user"
)

type Handler struct {
	users      user.Servicer
	sessions   session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	authMW     huma.Middlewares
}

// NewHandler serves registration and session management. The register and
// login operations are public; logout, me and change-password require the
// session cookie, so they carry the auth middleware chain.
func NewHandler(users user.Servicer, sessions session.Servicer, log *slog.Logger, public, authed huma.Middlewares) *Handler {
	return &Handler{
		users:      users,
		sessions:   sessions,
		log:        log,
		middleware: public,
		authMW:     authed,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.meOp(), h.me)
	huma.Register(api, h.changePasswordOp(), h.changePassword)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	userID, err := h.users.Register(ctx, input.Body.Email, input.Body.Name, input.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, huma.Error409Conflict("email already registered")
		}
		if errors.Is(err, user.ErrInvalidInput) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}

	h.log.Info("user registered", "user_id", userID)
	return &registerOutput{
		Body: registerResponse{
			ID:     userID,
			Status: "Ok",
		},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.users.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, huma.Error401Unauthorized("invalid email or password")
	}

	token, err := h.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &loginOutput{
		SetCookie: http.Cookie{
			Name:     authmw.CookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(session.TTL.Seconds()),
		},
		Body: loginResponse{
			Status: "Ok",
			User:   userResponse{ID: u.ID, Email: u.Email, Name: u.Name},
		},
	}, nil
}

func (h *Handler) logout(ctx context.Context, input *logoutInput) (*logoutOutput, error) {
	if input.Cookie != "" {
		if err := h.sessions.Revoke(ctx, input.Cookie); err != nil {
			h.log.Warn("failed to revoke session", "error", err)
		}
	}

	return &logoutOutput{
		SetCookie: http.Cookie{
			Name:     authmw.CookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		},
		Body: statusResponse{Status: "Ok"},
	}, nil
}

func (h *Handler) me(ctx context.Context, _ *struct{}) (*meOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	u, err := h.users.Get(ctx, userID)
	if err != nil {
		return nil, huma.Error404NotFound("user not found")
	}

	return &meOutput{
		Body: userResponse{ID: u.ID, Email: u.Email, Name: u.Name},
	}, nil
}

func (h *Handler) changePassword(ctx context.Context, input *changePasswordInput) (*statusOutput, error) {
	userID, ok := authmw.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	err := h.users.ChangePassword(ctx, userID, input.Body.OldPassword, input.Body.NewPassword)
	if err != nil {
		if errors.Is(err, user.ErrInvalidAuth) {
			return nil, huma.Error401Unauthorized("current password is wrong")
		}
		if errors.Is(err, user.ErrInvalidInput) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}
