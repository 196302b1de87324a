package expense

import (
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
)

type Expense struct {
	ID          int64          `gorm:"primaryKey"`
	Date        datamodel.Date `gorm:"column:date;type:date;not null;index"`
	Category    string         `gorm:"column:category;not null"`
	Description *string        `gorm:"column:description"`
	Amount      float64        `gorm:"column:amount;type:numeric(12,2);not null;default:0"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Expense) TableName() string {
	return "expenses"
}
