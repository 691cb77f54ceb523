// The budgetkeeper HTTP API.
//
// POST /api/v1/auth/register        # Create a user (public)
// POST /api/v1/auth/login           # Start a session, sets the cookie (public)
// POST /api/v1/auth/logout          # Revoke the session
// GET  /api/v1/auth/me              # Current user (auth)
// GET  /api/v1/accounts             # Accounts (auth)
// GET  /api/v1/categories           # Categories (auth)
// GET  /api/v1/category-groups      # Category groups (auth)
// GET  /api/v1/payees               # Payees (auth)
// GET  /api/v1/transactions         # Transactions, ?accountId= filter (auth)
// POST /api/v1/transactions         # Book a transaction, idempotent replays (auth)
// GET  /api/v1/budget?month=        # Budget allocations (auth)
// GET  /api/v1/dashboard            # Monthly aggregates (auth)
package api

import (
	"database/sql"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	accountAPI "budgetkeeper/internal/app/server/api/http/account"
	authAPI "budgetkeeper/internal/app/server/api/http/auth"
	budgetAPI "budgetkeeper/internal/app/server/api/http/budget"
	categoryAPI "budgetkeeper/internal/app/server/api/http/category"
	dashboardAPI "budgetkeeper/internal/app/server/api/http/dashboard"
	healthAPI "budgetkeeper/internal/app/server/api/http/health"
	"budgetkeeper/internal/app/server/api/http/middleware"
	"budgetkeeper/internal/app/server/api/http/middleware/auth"
	"budgetkeeper/internal/app/server/api/http/middleware/logger"
	payeeAPI "budgetkeeper/internal/app/server/api/http/payee"
	transactionAPI "budgetkeeper/internal/app/server/api/http/transaction"
	"budgetkeeper/internal/domain/account"
	"budgetkeeper/internal/domain/budget"
	"budgetkeeper/internal/domain/category"
	"budgetkeeper/internal/domain/payee"
	"budgetkeeper/internal/domain/session"
	"budgetkeeper/internal/domain/transaction"
	"budgetkeeper/internal/domain/user"
	"budgetkeeper/internal/infrastructure/storage/sqlstore"
)

type Handlers struct {
	Health      *healthAPI.Handler
	Auth        *authAPI.Handler
	Account     *accountAPI.Handler
	Category    *categoryAPI.Handler
	Payee       *payeeAPI.Handler
	Transaction *transactionAPI.Handler
	Budget      *budgetAPI.Handler
	Dashboard   *dashboardAPI.Handler
}

// New builds a *chi.Mux with every operation registered through huma.
func New(db *sql.DB, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Budgetkeeper API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookie": {Type: "apiKey", In: "cookie", Name: auth.CookieName},
	}

	API := humachi.New(mux, config)

	h := handlers(db, log)
	h.Health.SetupRoutes(API)
	h.Auth.SetupRoutes(API)
	h.Account.SetupRoutes(API)
	h.Category.SetupRoutes(API)
	h.Payee.SetupRoutes(API)
	h.Transaction.SetupRoutes(API)
	h.Budget.SetupRoutes(API)
	h.Dashboard.SetupRoutes(API)

	return mux
}

func handlers(db *sql.DB, log *slog.Logger) *Handlers {
	sessionRepo := sqlstore.NewSessionRepository(db, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(db.PingContext, log, middlewares.GetAllAndClear())

	userRepo := sqlstore.NewUserRepository(db, log)
	userService := user.NewService(userRepo, user.NewPasswordValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	authHandler := authAPI.NewHandler(userService, sessionService, log, public, middlewares.GetAllAndClear())

	accountRepo := sqlstore.NewAccountRepository(db, log)
	accountService := account.NewService(accountRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	accountHandler := accountAPI.NewHandler(accountService, log, middlewares.GetAllAndClear())

	categoryRepo := sqlstore.NewCategoryRepository(db, log)
	categoryService := category.NewService(categoryRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	categoryHandler := categoryAPI.NewHandler(categoryService, log, middlewares.GetAllAndClear())

	payeeRepo := sqlstore.NewPayeeRepository(db, log)
	payeeService := payee.NewService(payeeRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	payeeHandler := payeeAPI.NewHandler(payeeService, log, middlewares.GetAllAndClear())

	transactionRepo := sqlstore.NewTransactionRepository(db, log)
	transactionService := transaction.NewService(transactionRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	transactionHandler := transactionAPI.NewHandler(transactionService, log, middlewares.GetAllAndClear())

	budgetRepo := sqlstore.NewBudgetRepository(db, log)
	budgetService := budget.NewService(budgetRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	budgetHandler := budgetAPI.NewHandler(budgetService, log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	dashboardHandler := dashboardAPI.NewHandler(budgetService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:      healthHandler,
		Auth:        authHandler,
		Account:     accountHandler,
		Category:    categoryHandler,
		Payee:       payeeHandler,
		Transaction: transactionHandler,
		Budget:      budgetHandler,
		Dashboard:   dashboardHandler,
	}
}
