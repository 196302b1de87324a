package purchase

import (
	"time"

	expenseDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/expense"
)

// Purchase is one line item bought under an expense.
// expense_id carries no foreign key; a deleted expense leaves Expense nil.
type Purchase struct {
	ID           int64                     `gorm:"primaryKey"`
	ExpenseID    int64                     `gorm:"column:expense_id;not null;index"`
	ItemName     string                    `gorm:"column:item_name;not null"`
	Quantity     int                       `gorm:"column:quantity;not null;default:1"`
	PricePerUnit float64                   `gorm:"column:price_per_unit;type:numeric(12,2);not null;default:0"`
	CreatedAt    time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
	Expense      *expenseDatamodel.Expense `gorm:"foreignKey:ExpenseID;references:ID"`
}

func (Purchase) TableName() string {
	return "purchases"
}
