// Package web serves the server-rendered pages: the dashboard, one list+form
// page per record table and the printable report.
//
// Pages are stateless per request. Each request builds a form.Form, loads the
// table, applies the requested mode and renders. Notifications raised while
// handling the request are rendered inline.
package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	"github.com/frahmantamala/restaurant-ledger/internal/core/money"
	"github.com/frahmantamala/restaurant-ledger/internal/dashboard"
	"github.com/frahmantamala/restaurant-ledger/internal/expense"
	"github.com/frahmantamala/restaurant-ledger/internal/form"
	"github.com/frahmantamala/restaurant-ledger/internal/income"
	"github.com/frahmantamala/restaurant-ledger/internal/purchase"
	"github.com/frahmantamala/restaurant-ledger/internal/report"
	"github.com/frahmantamala/restaurant-ledger/internal/transport"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/nav"
	"github.com/go-chi/chi"
)

type IncomeService interface {
	form.Backend[*income.Income, income.CreateIncomeDTO]
}

type ExpenseService interface {
	form.Backend[*expense.Expense, expense.CreateExpenseDTO]
	Categories(ctx context.Context) ([]string, error)
}

type PurchaseService interface {
	form.Backend[*purchase.Purchase, purchase.CreatePurchaseDTO]
}

type DashboardService interface {
	Stats(ctx context.Context) (*dashboard.Stats, error)
}

type ReportService interface {
	Generate(ctx context.Context, from, to datamodel.Date) (*report.Summary, error)
	Today() datamodel.Date
}

type Services struct {
	Incomes   IncomeService
	Expenses  ExpenseService
	Purchases PurchaseService
	Dashboard DashboardService
	Reports   ReportService
}

type Handler struct {
	*transport.BaseHandler
	services   Services
	templates  *template.Template
	restaurant string
	now        func() time.Time
}

type Option func(*Handler)

// WithClock sets the clock used for create defaults.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

func NewHandler(baseHandler *transport.BaseHandler, restaurant string, services Services, opts ...Option) (*Handler, error) {
	t, err := template.New("pages").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	h := &Handler{
		BaseHandler: baseHandler,
		services:    services,
		templates:   t,
		restaurant:  restaurant,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

var funcs = template.FuncMap{
	"money": money.Format,
	"lineTotal": func(quantity int, pricePerUnit float64) string {
		return money.Format(purchase.LineTotal(quantity, pricePerUnit).InexactFloat64())
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.DashboardPage)

	r.Get("/income", h.IncomePage)
	r.Post("/income", h.SubmitIncome)
	r.Post("/income/{id}/delete", h.DeleteIncome)

	r.Get("/expenses", h.ExpensesPage)
	r.Post("/expenses", h.SubmitExpense)
	r.Post("/expenses/{id}/delete", h.DeleteExpense)

	r.Get("/purchases", h.PurchasesPage)
	r.Post("/purchases", h.SubmitPurchase)
	r.Post("/purchases/{id}/delete", h.DeletePurchase)

	r.Get("/reports", h.ReportsPage)
}

// page is the data every template receives.
type page struct {
	Title         string
	Restaurant    string
	Nav           []nav.Link
	Notifications []form.Notification
	Data          any
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, notes *form.Recorder, data any) {
	p := page{
		Title:      title,
		Restaurant: h.restaurant,
		Nav:        nav.Links(r.URL.Path),
		Data:       data,
	}
	if notes != nil {
		p.Notifications = notes.Notifications
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, p); err != nil {
		h.Logger.Error("render: template execution failed", "error", err, "template", name)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
