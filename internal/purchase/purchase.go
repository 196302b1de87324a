package purchase

import (
	"encoding/json"
	"time"

	purchaseDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/purchase"
	"github.com/frahmantamala/restaurant-ledger/internal/expense"
	"github.com/shopspring/decimal"
)

const noExpenseLabel = "N/A"

// Purchase is one item bought under an expense. Expense is nil when the
// referenced expense no longer exists or was not joined.
type Purchase struct {
	ID           int64            `json:"id"`
	ExpenseID    int64            `json:"expense_id"`
	ItemName     string           `json:"item_name"`
	Quantity     int              `json:"quantity"`
	PricePerUnit float64          `json:"price_per_unit"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Expense      *expense.Expense `json:"expense"`
}

// LineTotal is quantity times unit price, derived on every read.
func (p *Purchase) LineTotal() float64 {
	return LineTotal(p.Quantity, p.PricePerUnit).InexactFloat64()
}

func LineTotal(quantity int, pricePerUnit float64) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(decimal.NewFromFloat(pricePerUnit))
}

// ExpenseCategory labels the owning expense, or N/A for an orphan.
func (p *Purchase) ExpenseCategory() string {
	if p.Expense == nil {
		return noExpenseLabel
	}
	return p.Expense.Category
}

func (p *Purchase) MarshalJSON() ([]byte, error) {
	type Alias Purchase
	return json.Marshal(struct {
		*Alias
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     (*Alias)(p),
		LineTotal: p.LineTotal(),
	})
}

func NewPurchase(dto CreatePurchaseDTO) *Purchase {
	return &Purchase{
		ExpenseID:    dto.ExpenseID,
		ItemName:     dto.ItemName,
		Quantity:     dto.Quantity,
		PricePerUnit: dto.PricePerUnit,
	}
}

func ToDataModel(p *Purchase) *purchaseDatamodel.Purchase {
	return &purchaseDatamodel.Purchase{
		ID:           p.ID,
		ExpenseID:    p.ExpenseID,
		ItemName:     p.ItemName,
		Quantity:     p.Quantity,
		PricePerUnit: p.PricePerUnit,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromDataModel(p *purchaseDatamodel.Purchase) *Purchase {
	out := &Purchase{
		ID:           p.ID,
		ExpenseID:    p.ExpenseID,
		ItemName:     p.ItemName,
		Quantity:     p.Quantity,
		PricePerUnit: p.PricePerUnit,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Expense != nil && p.Expense.ID != 0 {
		out.Expense = expense.FromDataModel(p.Expense)
	}
	return out
}

func FromDataModelSlice(rows []purchaseDatamodel.Purchase) []*Purchase {
	result := make([]*Purchase, len(rows))
	for i := range rows {
		result[i] = FromDataModel(&rows[i])
	}
	return result
}
