package income

import (
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/common/validation"
	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
)

// CreateIncomeDTO is the payload for both insert and update-by-id.
type CreateIncomeDTO struct {
	Date               datamodel.Date `json:"date"`
	TotalIncome        float64        `json:"total_income"`
	CashAmount         float64        `json:"cash_amount"`
	CreditAmount       float64        `json:"credit_amount"`
	OtherAmount        float64        `json:"other_amount"`
	ActualCashReceived float64        `json:"actual_cash_received"`
}

func (dto CreateIncomeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("date", dto.Date).Required().ValidDate()
	v.Field("total_income", dto.TotalIncome).Finite()
	v.Field("cash_amount", dto.CashAmount).Finite()
	v.Field("credit_amount", dto.CreditAmount).Finite()
	v.Field("other_amount", dto.OtherAmount).Finite()
	v.Field("actual_cash_received", dto.ActualCashReceived).Finite()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Values lists every writable column for update-by-id.
func (dto CreateIncomeDTO) Values() map[string]any {
	return map[string]any{
		"date":                 dto.Date,
		"total_income":         dto.TotalIncome,
		"cash_amount":          dto.CashAmount,
		"credit_amount":        dto.CreditAmount,
		"other_amount":         dto.OtherAmount,
		"actual_cash_received": dto.ActualCashReceived,
	}
}

// NewCreateIncomeDTO is the blank form: today's date and zero amounts.
func NewCreateIncomeDTO(now time.Time) CreateIncomeDTO {
	return CreateIncomeDTO{Date: datamodel.Today(now)}
}

// EditIncomeDTO pre-fills the form from an existing row.
func EditIncomeDTO(i *Income) CreateIncomeDTO {
	return CreateIncomeDTO{
		Date:               i.Date,
		TotalIncome:        i.TotalIncome,
		CashAmount:         i.CashAmount,
		CreditAmount:       i.CreditAmount,
		OtherAmount:        i.OtherAmount,
		ActualCashReceived: i.ActualCashReceived,
	}
}

type IncomesResponse struct {
	Incomes []*Income `json:"incomes"`
}
