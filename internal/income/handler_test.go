package income_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/income"
	incomePostgres "github.com/frahmantamala/restaurant-ledger/internal/income/postgres"
	"github.com/frahmantamala/restaurant-ledger/internal/store/storetest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Income Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		db, err := storetest.Open()
		Expect(err).NotTo(HaveOccurred())

		service := income.NewService(incomePostgres.NewIncomeRepository(db, time.Second), nil, nil)
		router = chi.NewRouter()
		router.Route("/incomes", income.NewHandler(service).Routes)
	})

	send := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	create := func(date string, total float64) income.Income {
		w := send(http.MethodPost, "/incomes", `{"date":"`+date+`","total_income":`+jsonNumber(total)+`,"cash_amount":60,"actual_cash_received":58}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created income.Income
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		return created
	}

	It("should create and fetch an income row", func() {
		created := create("2024-01-10", 100)
		Expect(created.ID).To(BeNumerically(">", 0))

		w := send(http.MethodGet, "/incomes/"+jsonNumber(float64(created.ID)), "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var fetched income.Income
		Expect(json.NewDecoder(w.Body).Decode(&fetched)).To(Succeed())
		Expect(fetched.Date.String()).To(Equal("2024-01-10"))
		Expect(fetched.CashAmount).To(Equal(60.0))
		Expect(fetched.ActualCashReceived).To(Equal(58.0))
	})

	It("should list newest date first", func() {
		create("2024-01-01", 10)
		create("2024-01-03", 30)
		create("2024-01-02", 20)

		w := send(http.MethodGet, "/incomes", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var response income.IncomesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		dates := make([]string, len(response.Incomes))
		for i, row := range response.Incomes {
			dates[i] = row.Date.String()
		}
		Expect(dates).To(Equal([]string{"2024-01-03", "2024-01-02", "2024-01-01"}))
	})

	It("should update every field", func() {
		created := create("2024-01-10", 100)

		w := send(http.MethodPut, "/incomes/"+jsonNumber(float64(created.ID)), `{"date":"2024-01-11","total_income":0}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		var updated income.Income
		Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
		Expect(updated.Date.String()).To(Equal("2024-01-11"))
		Expect(updated.TotalIncome).To(BeZero())
		Expect(updated.CashAmount).To(BeZero())
	})

	It("should delete a row", func() {
		created := create("2024-01-10", 100)

		w := send(http.MethodDelete, "/incomes/"+jsonNumber(float64(created.ID)), "")
		Expect(w.Code).To(Equal(http.StatusNoContent))

		w = send(http.MethodGet, "/incomes/"+jsonNumber(float64(created.ID)), "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("INCOME_NOT_FOUND"))
	})

	It("should reject a malformed date", func() {
		w := send(http.MethodPost, "/incomes", `{"date":"10/01/2024"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should reject a missing date", func() {
		w := send(http.MethodPost, "/incomes", `{"total_income":100}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("date is required"))
	})

	It("should reject a non numeric id", func() {
		w := send(http.MethodGet, "/incomes/abc", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_ID"))
	})
})

func jsonNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}
