package rest_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frahmantamala/restaurant-ledger/api"
	"github.com/frahmantamala/restaurant-ledger/internal/dashboard"
	"github.com/frahmantamala/restaurant-ledger/internal/expense"
	expensePostgres "github.com/frahmantamala/restaurant-ledger/internal/expense/postgres"
	"github.com/frahmantamala/restaurant-ledger/internal/income"
	incomePostgres "github.com/frahmantamala/restaurant-ledger/internal/income/postgres"
	"github.com/frahmantamala/restaurant-ledger/internal/purchase"
	purchasePostgres "github.com/frahmantamala/restaurant-ledger/internal/purchase/postgres"
	"github.com/frahmantamala/restaurant-ledger/internal/report"
	"github.com/frahmantamala/restaurant-ledger/internal/store/storetest"
	"github.com/frahmantamala/restaurant-ledger/internal/transport"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/middleware"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/nav"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/rest"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/web"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest Suite")
}

var _ = Describe("Router", func() {
	var (
		router *chi.Mux
		sqlDB  *sql.DB
	)

	BeforeEach(func() {
		db, err := storetest.Open()
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err = db.DB()
		Expect(err).NotTo(HaveOccurred())

		incomes := income.NewService(incomePostgres.NewIncomeRepository(db, time.Second), nil, nil)
		expenses := expense.NewService(expensePostgres.NewExpenseRepository(db, time.Second), nil, nil)
		purchases := purchase.NewService(purchasePostgres.NewPurchaseRepository(db, time.Second), nil, nil)
		stats := dashboard.NewService(incomes, expenses, purchases, nil)
		reports := report.NewService(incomes, expenses, purchases, nil)

		base := transport.NewBaseHandler(nil)
		pages, err := web.NewHandler(base, "Trattoria", web.Services{
			Incomes:   incomes,
			Expenses:  expenses,
			Purchases: purchases,
			Dashboard: stats,
			Reports:   reports,
		})
		Expect(err).NotTo(HaveOccurred())

		doc, err := middleware.LoadOpenAPI(context.Background(), api.Spec)
		Expect(err).NotTo(HaveOccurred())
		validator, err := middleware.OpenAPIValidator(doc, nil)
		Expect(err).NotTo(HaveOccurred())

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, sqlDB, rest.Handlers{
			Income:    income.NewHandler(incomes),
			Expense:   expense.NewHandler(expenses),
			Purchase:  purchase.NewHandler(purchases),
			Dashboard: dashboard.NewHandler(base, stats),
			Report:    report.NewHandler(base, reports),
			Nav:       nav.NewHandler(base),
			Pages:     pages,
		}, rest.Options{
			AllowedOrigins: []string{"*"},
			Driver:         "sqlite",
			Spec:           api.Spec,
			Validator:      validator,
		}, nil)
	})

	send := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should answer ping", func() {
		w := send(http.MethodGet, "/api/v1/ping", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"status":"OK"`))
		Expect(w.Header().Get(middleware.TraceHeader)).NotTo(BeEmpty())
	})

	It("should report the database healthy", func() {
		w := send(http.MethodGet, "/api/v1/health", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var health rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&health)).To(Succeed())
		Expect(health.Status).To(Equal(rest.HealthHealthy))
		Expect(health.Components).To(HaveKey("database"))
		Expect(health.Driver).To(Equal("sqlite"))
		Expect(health.Components["ledger"].Status).To(Equal(rest.HealthHealthy))
		Expect(health.Components["ledger"].Details).To(HaveKeyWithValue("purchases", "ok"))
	})

	It("should report a missing ledger table", func() {
		_, err := sqlDB.Exec("DROP TABLE purchases")
		Expect(err).NotTo(HaveOccurred())

		w := send(http.MethodGet, "/api/v1/health", "")
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))

		var health rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&health)).To(Succeed())
		Expect(health.Components["database"].Status).To(Equal(rest.HealthHealthy))
		Expect(health.Components["ledger"].Status).To(Equal(rest.HealthUnhealthy))
		Expect(health.Components["ledger"].Details).To(HaveKeyWithValue("income", "ok"))
		Expect(health.Components["ledger"].Message).To(ContainSubstring("run migrate"))
	})

	It("should report the database unhealthy once it is closed", func() {
		Expect(sqlDB.Close()).To(Succeed())

		w := send(http.MethodGet, "/api/v1/health", "")
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(w.Body.String()).To(ContainSubstring(`"unhealthy"`))
	})

	It("should list the navigation entries", func() {
		w := send(http.MethodGet, "/api/v1/navigation", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"path":"/purchases"`))
	})

	It("should serve the OpenAPI document", func() {
		w := send(http.MethodGet, "/openapi.yml", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("application/yaml"))
		Expect(w.Body.String()).To(HavePrefix("openapi: 3.0.3"))
	})

	It("should validate JSON requests before the handlers", func() {
		w := send(http.MethodPost, "/api/v1/incomes", `{"date":"2024-01-10","total_income":"a lot"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		w = send(http.MethodPost, "/api/v1/incomes", `{"date":"2024-01-10","total_income":300}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		w = send(http.MethodGet, "/api/v1/dashboard", "")
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("should route categories ahead of expense ids through the validator", func() {
		w := send(http.MethodGet, "/api/v1/expenses/categories", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"categories":[]`))
	})

	It("should render the pages", func() {
		w := send(http.MethodGet, "/", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("text/html"))
		Expect(w.Body.String()).To(ContainSubstring("Trattoria"))
	})

	It("should answer CORS preflight", func() {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/incomes", nil)
		req.Header.Set("Origin", "http://pos.local")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})
})
