package purchase

import (
	"github.com/frahmantamala/restaurant-ledger/internal"
	"github.com/frahmantamala/restaurant-ledger/internal/core/common/validation"
)

const DefaultQuantity = 1

// CreatePurchaseDTO is the payload for both insert and update-by-id.
type CreatePurchaseDTO struct {
	ExpenseID    int64   `json:"expense_id"`
	ItemName     string  `json:"item_name"`
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
}

// ErrExpenseNotSelected rejects a purchase that points at no expense.
func ErrExpenseNotSelected() *internal.AppError {
	return internal.NewValidationFieldError("expense_id", "Please select an expense", internal.ErrCodeExpenseNotSelected)
}

// CheckExpenseSelected is the guard run before any store call.
func (dto CreatePurchaseDTO) CheckExpenseSelected() error {
	if dto.ExpenseID == 0 {
		return ErrExpenseNotSelected()
	}
	return nil
}

func (dto CreatePurchaseDTO) Validate() error {
	if err := dto.CheckExpenseSelected(); err != nil {
		return err
	}
	v := validation.NewValidator()
	v.Field("item_name", dto.ItemName).Required().MaxLength(200)
	v.Field("quantity", dto.Quantity).MinInt(1, internal.ErrCodeInvalidQuantity)
	v.Field("price_per_unit", dto.PricePerUnit).Finite()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (dto CreatePurchaseDTO) Values() map[string]any {
	return map[string]any{
		"expense_id":     dto.ExpenseID,
		"item_name":      dto.ItemName,
		"quantity":       dto.Quantity,
		"price_per_unit": dto.PricePerUnit,
	}
}

// NewCreatePurchaseDTO is the blank form: no expense, quantity 1, zero price.
func NewCreatePurchaseDTO() CreatePurchaseDTO {
	return CreatePurchaseDTO{Quantity: DefaultQuantity}
}

func EditPurchaseDTO(p *Purchase) CreatePurchaseDTO {
	return CreatePurchaseDTO{
		ExpenseID:    p.ExpenseID,
		ItemName:     p.ItemName,
		Quantity:     p.Quantity,
		PricePerUnit: p.PricePerUnit,
	}
}

type PurchasesResponse struct {
	Purchases []*Purchase `json:"purchases"`
}
