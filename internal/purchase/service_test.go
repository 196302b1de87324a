package purchase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal"
	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	expenseDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/expense"
	purchaseDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/purchase"
	"github.com/frahmantamala/restaurant-ledger/internal/expense"
	"github.com/frahmantamala/restaurant-ledger/internal/purchase"
	"github.com/frahmantamala/restaurant-ledger/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPurchase(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Purchase Suite")
}

// MockRepository implements purchase.RepositoryAPI for testing
type MockRepository struct {
	rows       map[int64]*purchaseDatamodel.Purchase
	nextID     int64
	calls      int
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{rows: make(map[int64]*purchaseDatamodel.Purchase), nextID: 1}
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) all() ([]purchaseDatamodel.Purchase, error) {
	m.calls++
	if m.shouldFail {
		return nil, m.failError
	}
	var result []purchaseDatamodel.Purchase
	for id := m.nextID - 1; id > 0; id-- {
		if row, ok := m.rows[id]; ok {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (m *MockRepository) GetAll(_ context.Context) ([]purchaseDatamodel.Purchase, error) {
	return m.all()
}

func (m *MockRepository) GetCreatedBetween(_ context.Context, _, _ time.Time) ([]purchaseDatamodel.Purchase, error) {
	return m.all()
}

func (m *MockRepository) GetByExpenseDate(_ context.Context, from, to datamodel.Date) ([]purchaseDatamodel.Purchase, error) {
	rows, err := m.all()
	if err != nil {
		return nil, err
	}
	var result []purchaseDatamodel.Purchase
	for _, row := range rows {
		if row.Expense != nil && row.Expense.Date >= from && row.Expense.Date <= to {
			result = append(result, row)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByID(_ context.Context, id int64) (*purchaseDatamodel.Purchase, error) {
	m.calls++
	if m.shouldFail {
		return nil, m.failError
	}
	row, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", store.ErrNotFound, id)
	}
	copied := *row
	return &copied, nil
}

func (m *MockRepository) Create(_ context.Context, row *purchaseDatamodel.Purchase) error {
	m.calls++
	if m.shouldFail {
		return m.failError
	}
	row.ID = m.nextID
	m.nextID++
	copied := *row
	m.rows[row.ID] = &copied
	return nil
}

func (m *MockRepository) Update(_ context.Context, id int64, values map[string]any) error {
	m.calls++
	if m.shouldFail {
		return m.failError
	}
	row, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("%w: id %d", store.ErrNotFound, id)
	}
	row.ExpenseID = values["expense_id"].(int64)
	row.ItemName = values["item_name"].(string)
	row.Quantity = values["quantity"].(int)
	row.PricePerUnit = values["price_per_unit"].(float64)
	return nil
}

func (m *MockRepository) Delete(_ context.Context, id int64) error {
	m.calls++
	if m.shouldFail {
		return m.failError
	}
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("%w: id %d", store.ErrNotFound, id)
	}
	delete(m.rows, id)
	return nil
}

func tomatoes(expenseID int64) purchase.CreatePurchaseDTO {
	return purchase.CreatePurchaseDTO{ExpenseID: expenseID, ItemName: "Tomatoes", Quantity: 3, PricePerUnit: 5}
}

var _ = Describe("Purchase Service", func() {
	var (
		mockRepo *MockRepository
		service  *purchase.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = purchase.NewService(mockRepo, nil, logger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("should store the purchase and derive its line total", func() {
			created, err := service.Create(ctx, tomatoes(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(1)))
			Expect(created.LineTotal()).To(Equal(15.0))
		})

		It("should refuse a purchase without an expense before any store call", func() {
			_, err := service.Create(ctx, tomatoes(0))

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.GetDetailedMessage()).To(Equal("Please select an expense"))
			Expect(mockRepo.calls).To(BeZero())
		})

		It("should reject a quantity below one", func() {
			dto := tomatoes(1)
			dto.Quantity = 0

			_, err := service.Create(ctx, dto)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.GetDetailedMessage()).To(Equal("quantity must be at least 1"))
		})

		It("should reject a non-finite unit price", func() {
			dto := tomatoes(1)
			dto.PricePerUnit = math.Inf(1)

			_, err := service.Create(ctx, dto)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.GetDetailedMessage()).To(Equal("price_per_unit must be a finite number"))
			Expect(mockRepo.calls).To(BeZero())
		})

		It("should require an item name", func() {
			dto := tomatoes(1)
			dto.ItemName = ""

			_, err := service.Create(ctx, dto)
			Expect(err).To(HaveOccurred())
			Expect(mockRepo.calls).To(BeZero())
		})
	})

	Describe("Update", func() {
		It("should move the purchase to another expense", func() {
			created, err := service.Create(ctx, tomatoes(1))
			Expect(err).NotTo(HaveOccurred())

			dto := tomatoes(2)
			dto.Quantity = 10
			updated, err := service.Update(ctx, created.ID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ExpenseID).To(Equal(int64(2)))
			Expect(updated.LineTotal()).To(Equal(50.0))
		})

		It("should report a missing row as not found", func() {
			_, err := service.Update(ctx, 9, tomatoes(1))
			Expect(err).To(MatchError(purchase.ErrPurchaseNotFound()))
		})
	})

	Describe("ListByExpenseDate", func() {
		It("should only keep purchases whose expense falls in the window", func() {
			mockRepo.rows[1] = &purchaseDatamodel.Purchase{ID: 1, ExpenseID: 1, ItemName: "Flour", Quantity: 1,
				Expense: &expenseDatamodel.Expense{ID: 1, Date: "2024-01-15", Category: "Dry goods"}}
			mockRepo.rows[2] = &purchaseDatamodel.Purchase{ID: 2, ExpenseID: 2, ItemName: "Oil", Quantity: 1,
				Expense: &expenseDatamodel.Expense{ID: 2, Date: "2024-02-15", Category: "Dry goods"}}
			mockRepo.rows[3] = &purchaseDatamodel.Purchase{ID: 3, ExpenseID: 99, ItemName: "Orphan", Quantity: 1}
			mockRepo.nextID = 4

			rows, err := service.ListByExpenseDate(ctx, "2024-01-01", "2024-01-31")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].ItemName).To(Equal("Flour"))
			Expect(rows[0].ExpenseCategory()).To(Equal("Dry goods"))
		})
	})

	Describe("Purchase", func() {
		It("should label an orphan purchase N/A", func() {
			p := &purchase.Purchase{ExpenseID: 99}
			Expect(p.ExpenseCategory()).To(Equal("N/A"))
		})

		It("should include the line total in JSON", func() {
			p := &purchase.Purchase{ID: 1, ExpenseID: 2, ItemName: "Eggs", Quantity: 12, PricePerUnit: 0.25,
				Expense: &expense.Expense{ID: 2, Category: "Dairy"}}

			b, err := json.Marshal(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(ContainSubstring(`"line_total":3`))
			Expect(string(b)).To(ContainSubstring(`"item_name":"Eggs"`))
		})

		It("should start a blank form at quantity one", func() {
			Expect(purchase.NewCreatePurchaseDTO()).To(Equal(purchase.CreatePurchaseDTO{Quantity: 1}))
		})
	})
})
