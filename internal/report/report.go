package report

import (
	"fmt"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
)

// Breakdown sums the income components exactly as recorded.
type Breakdown struct {
	Cash       float64 `json:"cash"`
	Credit     float64 `json:"credit"`
	Other      float64 `json:"other"`
	ActualCash float64 `json:"actual_cash"`
}

// Summary covers an inclusive date window. Purchases count when their
// expense's date is in the window, not their own creation time.
type Summary struct {
	From              datamodel.Date `json:"from"`
	To                datamodel.Date `json:"to"`
	TotalIncome       float64        `json:"total_income"`
	TotalExpenses     float64        `json:"total_expenses"`
	TotalPurchases    float64        `json:"total_purchases"`
	CashAfterExpenses float64        `json:"cash_after_expenses"`
	SurplusDeficit    float64        `json:"surplus_deficit"`
	IncomeBreakdown   Breakdown      `json:"income_breakdown"`
}

// Filename is restaurant-report-{from}-to-{to}.{ext}.
func (s *Summary) Filename(ext string) string {
	return fmt.Sprintf("restaurant-report-%s-to-%s.%s", s.From, s.To, ext)
}

type line struct {
	Label string
	Value float64
}

func (s *Summary) summaryLines() []line {
	return []line{
		{"Total Income", s.TotalIncome},
		{"Total Expenses", s.TotalExpenses},
		{"Total Purchases", s.TotalPurchases},
		{"Cash After Expenses", s.CashAfterExpenses},
		{"Surplus/Deficit", s.SurplusDeficit},
	}
}

func (s *Summary) breakdownLines() []line {
	return []line{
		{"Cash Amount", s.IncomeBreakdown.Cash},
		{"Credit Amount", s.IncomeBreakdown.Credit},
		{"Other Amount", s.IncomeBreakdown.Other},
		{"Actual Cash Received", s.IncomeBreakdown.ActualCash},
	}
}
