package expense

import (
	"fmt"
	"strconv"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	expenseDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/expense"
)

// Expense is money spent on a given day. One expense may cover a whole
// shopping trip whose items are recorded as purchases.
type Expense struct {
	ID          int64          `json:"id"`
	Date        datamodel.Date `json:"date"`
	Category    string         `json:"category"`
	Description *string        `json:"description"`
	Amount      float64        `json:"amount"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Label is how an expense is offered when picking one for a purchase.
func (e *Expense) Label() string {
	return fmt.Sprintf("%s - $%s (%s)", e.Category, strconv.FormatFloat(e.Amount, 'f', -1, 64), e.Date)
}

func NewExpense(dto CreateExpenseDTO) *Expense {
	return &Expense{
		Date:        dto.Date,
		Category:    dto.Category,
		Description: normalizeDescription(dto.Description),
		Amount:      dto.Amount,
	}
}

func normalizeDescription(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	return d
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:          e.ID,
		Date:        e.Date,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	return &Expense{
		ID:          e.ID,
		Date:        e.Date,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModelSlice(rows []expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(rows))
	for i := range rows {
		result[i] = FromDataModel(&rows[i])
	}
	return result
}
