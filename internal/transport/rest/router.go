package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/restaurant-ledger/internal/dashboard"
	"github.com/frahmantamala/restaurant-ledger/internal/expense"
	"github.com/frahmantamala/restaurant-ledger/internal/income"
	"github.com/frahmantamala/restaurant-ledger/internal/purchase"
	"github.com/frahmantamala/restaurant-ledger/internal/report"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/middleware"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/nav"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/swagger"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/web"
	"github.com/go-chi/chi"
)

// Handlers are the mounted route groups. A nil handler leaves its routes out.
type Handlers struct {
	Income    *income.Handler
	Expense   *expense.Handler
	Purchase  *purchase.Handler
	Dashboard *dashboard.Handler
	Report    *report.Handler
	Nav       *nav.Handler
	Pages     *web.Handler
}

type Options struct {
	AllowedOrigins []string
	// Driver names the record store in the health report.
	Driver string
	// Spec is the OpenAPI document served at /openapi.yml.
	Spec []byte
	// Validator, when set, checks every /api/v1 request against Spec.
	Validator func(http.Handler) http.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, opts Options, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, opts.Driver)

	// Apply global middleware
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	if opts.Spec != nil {
		router.Get(swagger.SpecPath, swagger.SpecHandler(opts.Spec))
		router.Handle("/swagger/*", swagger.Handler())
	}

	// Mount API under /api/v1 to match the OpenAPI paths
	router.Route("/api/v1", func(r chi.Router) {
		if opts.Validator != nil {
			r.Use(opts.Validator)
		}

		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if handlers.Nav != nil {
			r.Get("/navigation", handlers.Nav.GetNavigation)
		}
		if handlers.Income != nil {
			r.Route("/incomes", handlers.Income.Routes)
		}
		if handlers.Expense != nil {
			r.Route("/expenses", handlers.Expense.Routes)
		}
		if handlers.Purchase != nil {
			r.Route("/purchases", handlers.Purchase.Routes)
		}
		if handlers.Dashboard != nil {
			r.Get("/dashboard", handlers.Dashboard.GetStats)
		}
		if handlers.Report != nil {
			r.Route("/reports", handlers.Report.Routes)
		}
	})

	// Server-rendered pages
	if handlers.Pages != nil {
		router.Group(handlers.Pages.Routes)
	}
}
