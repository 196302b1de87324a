package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	purchaseDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/purchase"
	"github.com/frahmantamala/restaurant-ledger/internal/purchase"
	"github.com/frahmantamala/restaurant-ledger/internal/store"
	"gorm.io/gorm"
)

const expenseRelation = "Expense"

type PurchaseRepository struct {
	table *store.Table[purchaseDatamodel.Purchase]
}

func NewPurchaseRepository(db *gorm.DB, timeout time.Duration) purchase.RepositoryAPI {
	return &PurchaseRepository{table: store.NewTable[purchaseDatamodel.Purchase](db, timeout)}
}

func (r *PurchaseRepository) GetAll(ctx context.Context) ([]purchaseDatamodel.Purchase, error) {
	return r.table.List(ctx, store.Query{
		Joins:      []store.Join{{Relation: expenseRelation}},
		OrderBy:    "created_at",
		Descending: true,
	})
}

func (r *PurchaseRepository) GetCreatedBetween(ctx context.Context, from, to time.Time) ([]purchaseDatamodel.Purchase, error) {
	return r.table.List(ctx, store.Query{
		Ranges:     []store.Range{{Column: "created_at", From: from.UTC(), To: to.UTC()}},
		OrderBy:    "created_at",
		Descending: true,
	})
}

func (r *PurchaseRepository) GetByExpenseDate(ctx context.Context, from, to datamodel.Date) ([]purchaseDatamodel.Purchase, error) {
	return r.table.List(ctx, store.Query{
		Joins:      []store.Join{{Relation: expenseRelation, Inner: true}},
		Ranges:     []store.Range{{Table: expenseRelation, Column: "date", From: from, To: to}},
		OrderBy:    "created_at",
		Descending: true,
	})
}

func (r *PurchaseRepository) GetByID(ctx context.Context, id int64) (*purchaseDatamodel.Purchase, error) {
	return r.table.Get(ctx, id, store.Join{Relation: expenseRelation})
}

func (r *PurchaseRepository) Create(ctx context.Context, row *purchaseDatamodel.Purchase) error {
	return r.table.Insert(ctx, row)
}

func (r *PurchaseRepository) Update(ctx context.Context, id int64, values map[string]any) error {
	return r.table.UpdateByID(ctx, id, values)
}

func (r *PurchaseRepository) Delete(ctx context.Context, id int64) error {
	return r.table.DeleteByID(ctx, id)
}
