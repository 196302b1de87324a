package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	"github.com/frahmantamala/restaurant-ledger/internal/expense"
	"github.com/frahmantamala/restaurant-ledger/internal/form"
	"github.com/frahmantamala/restaurant-ledger/internal/income"
	"github.com/frahmantamala/restaurant-ledger/internal/purchase"
	"github.com/frahmantamala/restaurant-ledger/internal/report"
)

// ----------------- DASHBOARD -----------------

func (h *Handler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	notes := &form.Recorder{}
	stats, err := h.services.Dashboard.Stats(r.Context())
	if err != nil {
		h.Logger.Error("DashboardPage: stats failed", "error", err)
		notes.Notify(form.Notification{Level: form.LevelError, Title: "Error fetching dashboard", Detail: "Please try again"})
		h.render(w, r, statusOf(err), "dashboard_page", "Dashboard", notes, nil)
		return
	}
	h.render(w, r, http.StatusOK, "dashboard_page", "Dashboard", notes, stats)
}

// ----------------- INCOME -----------------

func (h *Handler) incomeForm(notes form.Notifier) *form.Form[*income.Income, income.CreateIncomeDTO] {
	return form.New(form.Config[*income.Income, income.CreateIncomeDTO]{
		Singular: "Income",
		Plural:   "incomes",
		Backend:  h.services.Incomes,
		ID:       func(i *income.Income) int64 { return i.ID },
		Blank:    func() income.CreateIncomeDTO { return income.NewCreateIncomeDTO(h.now()) },
		Prefill:  income.EditIncomeDTO,
		Notifier: notes,
	})
}

func parseIncome(values url.Values) (income.CreateIncomeDTO, error) {
	dto := income.CreateIncomeDTO{Date: datamodel.Date(strings.TrimSpace(values.Get("date")))}
	fields := []struct {
		key string
		dst *float64
	}{
		{"total_income", &dto.TotalIncome},
		{"cash_amount", &dto.CashAmount},
		{"credit_amount", &dto.CreditAmount},
		{"other_amount", &dto.OtherAmount},
		{"actual_cash_received", &dto.ActualCashReceived},
	}
	for _, f := range fields {
		v, err := formFloat(values, f.key)
		if err != nil {
			return dto, err
		}
		*f.dst = v
	}
	return dto, nil
}

func (h *Handler) renderIncome(w http.ResponseWriter, r *http.Request, status int, notes *form.Recorder, f *form.Form[*income.Income, income.CreateIncomeDTO]) {
	h.render(w, r, status, "income_page", "Income", notes, viewOf(f, func(i *income.Income) int64 { return i.ID }))
}

func (h *Handler) IncomePage(w http.ResponseWriter, r *http.Request) {
	notes := &form.Recorder{}
	f := h.incomeForm(notes)
	open(r, f)
	h.renderIncome(w, r, http.StatusOK, notes, f)
}

func (h *Handler) SubmitIncome(w http.ResponseWriter, r *http.Request) {
	notes := &form.Recorder{}
	f := h.incomeForm(notes)
	status := submit(r, f, notes, "income", parseIncome)
	h.renderIncome(w, r, status, notes, f)
}

func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	notes := &form.Recorder{}
	f := h.incomeForm(notes)
	status := remove(r, f)
	h.renderIncome(w, r, status, notes, f)
}

// ----------------- EXPENSES -----------------

type expensesView struct {
	formView[*expense.Expense, expense.CreateExpenseDTO]
	Categories []string
}

func (h *Handler) expenseForm(notes form.Notifier) *form.Form[*expense.Expense, expense.CreateExpenseDTO] {
	return form.New(form.Config[*expense.Expense, expense.CreateExpenseDTO]{
		Singular: "Expense",
		Plural:   "expenses",
		Backend:  h.services.Expenses,
		ID:       func(e *expense.Expense) int64 { return e.ID },
		Blank:    func() expense.CreateExpenseDTO { return expense.NewCreateExpenseDTO(h.now()) },
		Prefill:  expense.EditExpenseDTO,
		Notifier: notes,
	})
}

func parseExpense(values url.Values) (expense.CreateExpenseDTO, error) {
	dto := expense.CreateExpenseDTO{
		Date:     datamodel.Date(strings.TrimSpace(values.Get("date"))),
		Category: strings.TrimSpace(values.Get("category")),
	}
	if desc := strings.TrimSpace(values.Get("description")); desc != "" {
		dto.Description = &desc
	}
	amount, err := formFloat(values, "amount")
	if err != nil {
		return dto, err
	}
	dto.Amount = amount
	return dto, nil
}

func (h *Handler) renderExpenses(w http.ResponseWriter, r *http.Request, status int, notes *form.Recorder, f *form.Form[*expense.Expense, expense.CreateExpenseDTO]) {
	categories, err := h.services.Expenses.Categories(r.Context())
	if err != nil {
		// suggestions only; the page still works without them
		h.Logger.Warn("renderExpenses: categories unavailable", "error", err)
	}
	h.render(w, r, status, "expenses_page", "Expenses", notes, expensesView{
		formView:   viewOf(f, func(e *expense.Expense) int64 { return e.ID }),
		Categories: categories,
	})
}

func (h *Handler) ExpensesPage(w http.ResponseWriter, r *http.Request) {
	notes := &form.Recorder{}
	f := h.expenseForm(notes)
	open(r, f)
	h.renderExpenses(w, r, http.StatusOK, notes, f)
}

func (h *Handler) SubmitExpense(w http.ResponseWriter, r *http.Request) {
	notes := &form.Recorder{}
	f := h.expenseForm(notes)
	status := submit(r, f, notes, "expense", parseExpense)
	h.renderExpenses(w, r, status, notes, f)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	notes := &form.Recorder{}
	f := h.expenseForm(notes)
	status := remove(r, f)
	h.renderExpenses(w, r, status, notes, f)
}

// ----------------- PURCHASES -----------------

type purchasesView struct {
	formView[*purchase.Purchase, purchase.CreatePurchaseDTO]
	Expenses []*expense.Expense
}

func (h *Handler) purchaseForm(notes form.Notifier) *form.Form[*purchase.Purchase, purchase.CreatePurchaseDTO] {
	return form.New(form.Config[*purchase.Purchase, purchase.CreatePurchaseDTO]{
		Singular: "Purchase",
		Plural:   "purchases",
		Backend:  h.services.Purchases,
		ID:       func(p *purchase.Purchase) int64 { return p.ID },
		Blank:    purchase.NewCreatePurchaseDTO,
		Prefill:  purchase.EditPurchaseDTO,
		Guard:    purchase.CreatePurchaseDTO.CheckExpenseSelected,
		Notifier: notes,
	})
}

func parsePurchase(values url.Values) (purchase.CreatePurchaseDTO, error) {
	dto := purchase.CreatePurchaseDTO{
		ExpenseID: formID(values, "expense_id"),
		ItemName:  strings.TrimSpace(values.Get("item_name")),
	}
	quantity, err := formInt(values, "quantity", purchase.DefaultQuantity)
	if err != nil {
		return dto, err
	}
	dto.Quantity = quantity
	price, err := formFloat(values, "price_per_unit")
	if err != nil {
		return dto, err
	}
	dto.PricePerUnit = price
	return dto, nil
}

// renderPurchases also loads the full expense list for the selection control.
func (h *Handler) renderPurchases(w http.ResponseWriter, r *http.Request, status int, notes *form.Recorder, f *form.Form[*purchase.Purchase, purchase.CreatePurchaseDTO]) {
	expenses, err := h.services.Expenses.List(r.Context())
	if err != nil {
		h.Logger.Error("renderPurchases: expenses unavailable", "error", err)
		notes.Notify(form.Notification{Level: form.LevelError, Title: "Error fetching expenses", Detail: "Please try again"})
	}
	h.render(w, r, status, "purchases_page", "Purchases", notes, purchasesView{
		formView: viewOf(f, func(p *purchase.Purchase) int64 { return p.ID }),
		Expenses: expenses,
	})
}

func (h *Handler) PurchasesPage(w http.ResponseWriter, r *http.Request) {
	notes := &form.Recorder{}
	f := h.purchaseForm(notes)
	open(r, f)
	h.renderPurchases(w, r, http.StatusOK, notes, f)
}

func (h *Handler) SubmitPurchase(w http.ResponseWriter, r *http.Request) {
	notes := &form.Recorder{}
	f := h.purchaseForm(notes)
	status := submit(r, f, notes, "purchase", parsePurchase)
	h.renderPurchases(w, r, status, notes, f)
}

func (h *Handler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	notes := &form.Recorder{}
	f := h.purchaseForm(notes)
	status := remove(r, f)
	h.renderPurchases(w, r, status, notes, f)
}

// ----------------- REPORTS -----------------

type reportsView struct {
	From    datamodel.Date
	To      datamodel.Date
	Summary *report.Summary
	CSVURL  string
	XLSXURL string
}

// ReportsPage shows the window picker; a report is generated once a bound is given.
func (h *Handler) ReportsPage(w http.ResponseWriter, r *http.Request) {
	notes := &form.Recorder{}
	today := h.services.Reports.Today()
	view := reportsView{From: today, To: today}

	q := r.URL.Query()
	if !q.Has("from") && !q.Has("to") {
		h.render(w, r, http.StatusOK, "reports_page", "Reports", notes, view)
		return
	}

	from, to, err := report.ParseWindow(r)
	if err == nil {
		view.Summary, err = h.services.Reports.Generate(r.Context(), from, to)
	}
	if err != nil {
		h.Logger.Error("ReportsPage: generate failed", "error", err)
		notes.Notify(form.Notification{Level: form.LevelError, Title: "Error generating report", Detail: detail(err)})
		if from != "" {
			view.From = from
		}
		if to != "" {
			view.To = to
		}
		h.render(w, r, statusOf(err), "reports_page", "Reports", notes, view)
		return
	}

	view.From, view.To = view.Summary.From, view.Summary.To
	query := url.Values{"from": {view.From.String()}, "to": {view.To.String()}}.Encode()
	view.CSVURL = "/api/v1/reports/export.csv?" + query
	view.XLSXURL = "/api/v1/reports/export.xlsx?" + query
	notes.Notify(form.Notification{Level: form.LevelSuccess, Title: "Report generated successfully"})
	h.render(w, r, http.StatusOK, "reports_page", "Reports", notes, view)
}
