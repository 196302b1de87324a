package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	incomeDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/income"
	"github.com/frahmantamala/restaurant-ledger/internal/income"
	"github.com/frahmantamala/restaurant-ledger/internal/store"
	"gorm.io/gorm"
)

type IncomeRepository struct {
	table *store.Table[incomeDatamodel.Income]
}

func NewIncomeRepository(db *gorm.DB, timeout time.Duration) income.RepositoryAPI {
	return &IncomeRepository{table: store.NewTable[incomeDatamodel.Income](db, timeout)}
}

func (r *IncomeRepository) GetAll(ctx context.Context) ([]incomeDatamodel.Income, error) {
	return r.table.List(ctx, store.Query{OrderBy: "date", Descending: true})
}

func (r *IncomeRepository) GetBetween(ctx context.Context, from, to datamodel.Date) ([]incomeDatamodel.Income, error) {
	return r.table.List(ctx, store.Query{
		Ranges:     []store.Range{{Column: "date", From: from, To: to}},
		OrderBy:    "date",
		Descending: true,
	})
}

func (r *IncomeRepository) GetByID(ctx context.Context, id int64) (*incomeDatamodel.Income, error) {
	return r.table.Get(ctx, id)
}

func (r *IncomeRepository) Create(ctx context.Context, row *incomeDatamodel.Income) error {
	return r.table.Insert(ctx, row)
}

func (r *IncomeRepository) Update(ctx context.Context, id int64, values map[string]any) error {
	return r.table.UpdateByID(ctx, id, values)
}

func (r *IncomeRepository) Delete(ctx context.Context, id int64) error {
	return r.table.DeleteByID(ctx, id)
}
