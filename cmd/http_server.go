package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/restaurant-ledger/api"
	"github.com/frahmantamala/restaurant-ledger/internal"
	"github.com/frahmantamala/restaurant-ledger/internal/core/events"
	"github.com/frahmantamala/restaurant-ledger/internal/dashboard"
	"github.com/frahmantamala/restaurant-ledger/internal/expense"
	expensePostgres "github.com/frahmantamala/restaurant-ledger/internal/expense/postgres"
	"github.com/frahmantamala/restaurant-ledger/internal/income"
	incomePostgres "github.com/frahmantamala/restaurant-ledger/internal/income/postgres"
	"github.com/frahmantamala/restaurant-ledger/internal/purchase"
	purchasePostgres "github.com/frahmantamala/restaurant-ledger/internal/purchase/postgres"
	"github.com/frahmantamala/restaurant-ledger/internal/report"
	"github.com/frahmantamala/restaurant-ledger/internal/store"
	"github.com/frahmantamala/restaurant-ledger/internal/transport"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/middleware"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/nav"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/rest"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/web"
	"github.com/frahmantamala/restaurant-ledger/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server serving the JSON API and the pages`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Events   *events.EventBus
	Services *Services
	Logger   *slog.Logger
}

// Services are the record and aggregation services shared by every surface.
type Services struct {
	Income    *income.Service
	Expense   *expense.Service
	Purchase  *purchase.Service
	Dashboard *dashboard.Service
	Report    *report.Service
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "driver", deps.Config.Database.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.Events.Wait()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	base := transport.NewBaseHandler(deps.Logger)
	svc := deps.Services

	pages, err := web.NewHandler(base, deps.Config.Restaurant.Name, web.Services{
		Incomes:   svc.Income,
		Expenses:  svc.Expense,
		Purchases: svc.Purchase,
		Dashboard: svc.Dashboard,
		Reports:   svc.Report,
	}, web.WithClock(clock(deps.Config)))
	if err != nil {
		return err
	}

	opts := rest.Options{
		AllowedOrigins: deps.Config.Server.Origins(),
		Spec:           api.Spec,
		Driver:         deps.Config.Database.Driver,
	}
	if deps.Config.Server.ValidateRequests {
		doc, err := middleware.LoadOpenAPI(context.Background(), api.Spec)
		if err != nil {
			return err
		}
		validator, err := middleware.OpenAPIValidator(doc, deps.Logger)
		if err != nil {
			return err
		}
		opts.Validator = validator
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, rest.Handlers{
		Income:    income.NewHandler(svc.Income),
		Expense:   expense.NewHandler(svc.Expense),
		Purchase:  purchase.NewHandler(svc.Purchase),
		Dashboard: dashboard.NewHandler(base, svc.Dashboard),
		Report:    report.NewHandler(base, svc.Report),
		Nav:       nav.NewHandler(base),
		Pages:     pages,
	}, opts, deps.Logger)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitWithLevel(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := openGorm(config.Database, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewEventBus(lg)
	bus.Subscribe(events.Wildcard, events.AuditLogger(lg))

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Router:   chi.NewRouter(),
		Events:   bus,
		Services: buildServices(config, gormDB, bus, lg),
	}, nil
}

func buildServices(cfg *internal.Config, gormDB *gorm.DB, publisher events.Publisher, lg *slog.Logger) *Services {
	timeout := cfg.Store.QueryTimeout

	incomes := income.NewService(incomePostgres.NewIncomeRepository(gormDB, timeout), publisher, lg)
	expenses := expense.NewService(expensePostgres.NewExpenseRepository(gormDB, timeout), publisher, lg)
	purchases := purchase.NewService(purchasePostgres.NewPurchaseRepository(gormDB, timeout), publisher, lg)

	now := clock(cfg)
	return &Services{
		Income:    incomes,
		Expense:   expenses,
		Purchase:  purchases,
		Dashboard: dashboard.NewService(incomes, expenses, purchases, lg, dashboard.WithClock(now)),
		Report:    report.NewService(incomes, expenses, purchases, lg, report.WithClock(now)),
	}
}

// clock reads the time in the restaurant's timezone.
func clock(cfg *internal.Config) func() time.Time {
	loc := cfg.Restaurant.Location()
	return func() time.Time {
		return time.Now().In(loc)
	}
}

func sqlDriverName(driver string) string {
	if driver == internal.DriverSQLite {
		return "sqlite3"
	}
	return "pgx"
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	driver := sqlDriverName(cfg.Driver)

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// openGorm shares the sqlx pool with gorm.
func openGorm(cfg internal.DatabaseConfig, db *sqlx.DB) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.DriverSQLite:
		dialector = sqlite.New(sqlite.Config{DriverName: "sqlite3", Conn: db.DB})
	default:
		dialector = postgres.New(postgres.Config{Conn: db.DB})
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc:                                  store.Now,
	})
}
