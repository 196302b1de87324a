package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	expenseDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/expense"
	"github.com/frahmantamala/restaurant-ledger/internal/expense"
	"github.com/frahmantamala/restaurant-ledger/internal/store"
	"gorm.io/gorm"
)

// ExpenseRepository implements expense.RepositoryAPI on the expenses table.
type ExpenseRepository struct {
	table *store.Table[expenseDatamodel.Expense]
}

func NewExpenseRepository(db *gorm.DB, timeout time.Duration) expense.RepositoryAPI {
	return &ExpenseRepository{table: store.NewTable[expenseDatamodel.Expense](db, timeout)}
}

func (r *ExpenseRepository) GetAll(ctx context.Context) ([]expenseDatamodel.Expense, error) {
	return r.table.List(ctx, store.Query{OrderBy: "date", Descending: true})
}

func (r *ExpenseRepository) GetBetween(ctx context.Context, from, to datamodel.Date) ([]expenseDatamodel.Expense, error) {
	return r.table.List(ctx, store.Query{
		Ranges:     []store.Range{{Column: "date", From: from, To: to}},
		OrderBy:    "date",
		Descending: true,
	})
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*expenseDatamodel.Expense, error) {
	return r.table.Get(ctx, id)
}

func (r *ExpenseRepository) GetCategories(ctx context.Context) ([]string, error) {
	return r.table.Distinct(ctx, "category")
}

func (r *ExpenseRepository) Create(ctx context.Context, row *expenseDatamodel.Expense) error {
	return r.table.Insert(ctx, row)
}

func (r *ExpenseRepository) Update(ctx context.Context, id int64, values map[string]any) error {
	return r.table.UpdateByID(ctx, id, values)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	return r.table.DeleteByID(ctx, id)
}
