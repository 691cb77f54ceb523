package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"budgetkeeper/internal/domain/session"
)

// CookieName is the session cookie issued at login.
const CookieName = "bk_session"

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With(slog.String("component", "auth middleware")),
	}
}

type contextKey string

const UserIDKey contextKey = "userID"

// Middleware authenticates the request by its session cookie and stores the
// user id in the request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cookie, err := huma.ReadCookie(ctx, CookieName)
		if err != nil || cookie.Value == "" {
			a.reject(ctx)
			return
		}

		userID, err := a.session.Validate(ctx.Context(), cookie.Value)
		if err != nil {
			a.log.Debug("session validation failed", "error", err)
			a.reject(ctx)
			return
		}

		newCtx := context.WithValue(ctx.Context(), UserIDKey, userID)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) reject(ctx huma.Context) {
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")

	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	}); err != nil {
		a.log.Error("failed to write unauthorized response", "error", err)
	}
}

func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
