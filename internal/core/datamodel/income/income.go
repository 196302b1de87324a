package income

import (
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
)

// Income is one day's takings as declared by the restaurant.
type Income struct {
	ID                 int64          `gorm:"primaryKey"`
	Date               datamodel.Date `gorm:"column:date;type:date;not null;index"`
	TotalIncome        float64        `gorm:"column:total_income;type:numeric(12,2);not null;default:0"`
	CashAmount         float64        `gorm:"column:cash_amount;type:numeric(12,2);not null;default:0"`
	CreditAmount       float64        `gorm:"column:credit_amount;type:numeric(12,2);not null;default:0"`
	OtherAmount        float64        `gorm:"column:other_amount;type:numeric(12,2);not null;default:0"`
	ActualCashReceived float64        `gorm:"column:actual_cash_received;type:numeric(12,2);not null;default:0"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Income) TableName() string {
	return "income"
}
