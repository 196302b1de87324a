package purchase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/expense"
	expensePostgres "github.com/frahmantamala/restaurant-ledger/internal/expense/postgres"
	"github.com/frahmantamala/restaurant-ledger/internal/purchase"
	purchasePostgres "github.com/frahmantamala/restaurant-ledger/internal/purchase/postgres"
	"github.com/frahmantamala/restaurant-ledger/internal/store/storetest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Purchase Handler Integration", func() {
	var (
		router  *chi.Mux
		produce *expense.Expense
	)

	BeforeEach(func() {
		db, err := storetest.Open()
		Expect(err).NotTo(HaveOccurred())

		expenses := expense.NewService(expensePostgres.NewExpenseRepository(db, time.Second), nil, nil)
		purchases := purchase.NewService(purchasePostgres.NewPurchaseRepository(db, time.Second), nil, nil)

		produce, err = expenses.Create(context.Background(), expense.CreateExpenseDTO{Date: "2024-01-15", Category: "Produce", Amount: 120})
		Expect(err).NotTo(HaveOccurred())

		router = chi.NewRouter()
		router.Route("/expenses", expense.NewHandler(expenses).Routes)
		router.Route("/purchases", purchase.NewHandler(purchases).Routes)
	})

	send := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	purchaseBody := func(expenseID int64) string {
		return `{"expense_id":` + strconv.FormatInt(expenseID, 10) + `,"item_name":"Tomatoes","quantity":3,"price_per_unit":5}`
	}

	It("should create a purchase with its expense and line total", func() {
		w := send(http.MethodPost, "/purchases", purchaseBody(produce.ID))
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created map[string]any
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		w = send(http.MethodGet, "/purchases/"+strconv.FormatFloat(created["id"].(float64), 'f', 0, 64), "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var fetched map[string]any
		Expect(json.NewDecoder(w.Body).Decode(&fetched)).To(Succeed())
		Expect(fetched["line_total"]).To(Equal(15.0))
		Expect(fetched["expense"]).To(HaveKeyWithValue("category", "Produce"))
	})

	It("should refuse a purchase without an expense", func() {
		w := send(http.MethodPost, "/purchases", purchaseBody(0))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("EXPENSE_NOT_SELECTED"))

		w = send(http.MethodGet, "/purchases", "")
		Expect(w.Body.String()).To(ContainSubstring(`"purchases":[]`))
	})

	It("should keep purchases whose expense was deleted", func() {
		Expect(send(http.MethodPost, "/purchases", purchaseBody(produce.ID)).Code).To(Equal(http.StatusCreated))
		Expect(send(http.MethodDelete, "/expenses/"+strconv.FormatInt(produce.ID, 10), "").Code).To(Equal(http.StatusNoContent))

		w := send(http.MethodGet, "/purchases", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var response struct {
			Purchases []map[string]any `json:"purchases"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Purchases).To(HaveLen(1))
		Expect(response.Purchases[0]["expense"]).To(BeNil())
		Expect(response.Purchases[0]["expense_id"]).To(Equal(float64(produce.ID)))
	})

	It("should reject a fractional quantity", func() {
		w := send(http.MethodPost, "/purchases", `{"expense_id":1,"item_name":"Tomatoes","quantity":1.5}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
