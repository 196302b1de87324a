package expense_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/expense"
	expensePostgres "github.com/frahmantamala/restaurant-ledger/internal/expense/postgres"
	"github.com/frahmantamala/restaurant-ledger/internal/store/storetest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Expense Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		db, err := storetest.Open()
		Expect(err).NotTo(HaveOccurred())

		service := expense.NewService(expensePostgres.NewExpenseRepository(db, time.Second), nil, nil)
		router = chi.NewRouter()
		router.Route("/expenses", expense.NewHandler(service).Routes)
	})

	send := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should create an expense without a description", func() {
		w := send(http.MethodPost, "/expenses", `{"date":"2024-01-15","category":"Produce","amount":120}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created expense.Expense
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.Category).To(Equal("Produce"))
		Expect(created.Description).To(BeNil())
	})

	It("should list categories ahead of the id route", func() {
		send(http.MethodPost, "/expenses", `{"date":"2024-01-15","category":"Produce","amount":120}`)
		send(http.MethodPost, "/expenses", `{"date":"2024-01-16","category":"Beverages","amount":40}`)
		send(http.MethodPost, "/expenses", `{"date":"2024-01-17","category":"Produce","amount":20}`)

		w := send(http.MethodGet, "/expenses/categories", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var response expense.CategoriesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Categories).To(Equal([]string{"Beverages", "Produce"}))
	})

	It("should return an empty category list as an array", func() {
		w := send(http.MethodGet, "/expenses/categories", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"categories":[]`))
	})

	It("should list newest date first", func() {
		send(http.MethodPost, "/expenses", `{"date":"2024-01-15","category":"Produce","amount":120}`)
		send(http.MethodPost, "/expenses", `{"date":"2024-01-17","category":"Meat","amount":90}`)

		w := send(http.MethodGet, "/expenses", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var response expense.ExpensesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Expenses).To(HaveLen(2))
		Expect(response.Expenses[0].Category).To(Equal("Meat"))
	})

	It("should reject a missing category", func() {
		w := send(http.MethodPost, "/expenses", `{"date":"2024-01-15","amount":120}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("category is required"))
	})

	It("should return 404 for an unknown expense", func() {
		w := send(http.MethodDelete, "/expenses/12", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("EXPENSE_NOT_FOUND"))
	})
})
