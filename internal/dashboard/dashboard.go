package dashboard

import (
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
)

// Stats are month-to-date totals. NetProfit ignores purchases.
type Stats struct {
	From           datamodel.Date `json:"from"`
	To             datamodel.Date `json:"to"`
	TotalIncome    float64        `json:"total_income"`
	TotalExpenses  float64        `json:"total_expenses"`
	TotalPurchases float64        `json:"total_purchases"`
	NetProfit      float64        `json:"net_profit"`
}

// Window is the first of the current month through today.
type Window struct {
	From datamodel.Date
	To   datamodel.Date
	// CreatedFrom and CreatedTo bound purchases by their own created_at.
	CreatedFrom time.Time
	CreatedTo   time.Time
}

func MonthToDate(now time.Time) Window {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	return Window{
		From:        datamodel.FirstOfMonth(now),
		To:          datamodel.Today(now),
		CreatedFrom: start,
		CreatedTo:   endOfToday,
	}
}
