package expense

import (
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/common/validation"
	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
)

// CreateExpenseDTO is the payload for both insert and update-by-id.
type CreateExpenseDTO struct {
	Date        datamodel.Date `json:"date"`
	Category    string         `json:"category"`
	Description *string        `json:"description,omitempty"`
	Amount      float64        `json:"amount"`
}

func (dto CreateExpenseDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("date", dto.Date).Required().ValidDate()
	v.Field("category", dto.Category).Required().MaxLength(100)
	v.Field("description", dto.Description).MaxLength(500)
	v.Field("amount", dto.Amount).Finite()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Values lists every writable column for update-by-id.
func (dto CreateExpenseDTO) Values() map[string]any {
	return map[string]any{
		"date":        dto.Date,
		"category":    dto.Category,
		"description": normalizeDescription(dto.Description),
		"amount":      dto.Amount,
	}
}

func NewCreateExpenseDTO(now time.Time) CreateExpenseDTO {
	return CreateExpenseDTO{Date: datamodel.Today(now)}
}

func EditExpenseDTO(e *Expense) CreateExpenseDTO {
	return CreateExpenseDTO{
		Date:        e.Date,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
	}
}

type ExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
