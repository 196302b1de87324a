package income

import (
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	incomeDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/income"
	"github.com/shopspring/decimal"
)

// Income is a day's declared takings. The cash/credit/other breakdown is
// recorded as entered and never reconciled against TotalIncome.
type Income struct {
	ID                 int64          `json:"id"`
	Date               datamodel.Date `json:"date"`
	TotalIncome        float64        `json:"total_income"`
	CashAmount         float64        `json:"cash_amount"`
	CreditAmount       float64        `json:"credit_amount"`
	OtherAmount        float64        `json:"other_amount"`
	ActualCashReceived float64        `json:"actual_cash_received"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// CashVariance is actual cash received minus declared cash: negative for a
// shortfall, positive for an overage.
func (i *Income) CashVariance() float64 {
	return decimal.NewFromFloat(i.ActualCashReceived).
		Sub(decimal.NewFromFloat(i.CashAmount)).
		InexactFloat64()
}

func NewIncome(dto CreateIncomeDTO) *Income {
	return &Income{
		Date:               dto.Date,
		TotalIncome:        dto.TotalIncome,
		CashAmount:         dto.CashAmount,
		CreditAmount:       dto.CreditAmount,
		OtherAmount:        dto.OtherAmount,
		ActualCashReceived: dto.ActualCashReceived,
	}
}

func ToDataModel(i *Income) *incomeDatamodel.Income {
	return &incomeDatamodel.Income{
		ID:                 i.ID,
		Date:               i.Date,
		TotalIncome:        i.TotalIncome,
		CashAmount:         i.CashAmount,
		CreditAmount:       i.CreditAmount,
		OtherAmount:        i.OtherAmount,
		ActualCashReceived: i.ActualCashReceived,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}

func FromDataModel(i *incomeDatamodel.Income) *Income {
	return &Income{
		ID:                 i.ID,
		Date:               i.Date,
		TotalIncome:        i.TotalIncome,
		CashAmount:         i.CashAmount,
		CreditAmount:       i.CreditAmount,
		OtherAmount:        i.OtherAmount,
		ActualCashReceived: i.ActualCashReceived,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}

func FromDataModelSlice(rows []incomeDatamodel.Income) []*Income {
	result := make([]*Income, len(rows))
	for i := range rows {
		result[i] = FromDataModel(&rows[i])
	}
	return result
}
