package expense

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/restaurant-ledger/internal"
	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	expenseDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/expense"
	"github.com/frahmantamala/restaurant-ledger/internal/core/events"
	"github.com/frahmantamala/restaurant-ledger/internal/store"
)

const entityName = "expense"

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]expenseDatamodel.Expense, error)
	GetBetween(ctx context.Context, from, to datamodel.Date) ([]expenseDatamodel.Expense, error)
	GetByID(ctx context.Context, id int64) (*expenseDatamodel.Expense, error)
	GetCategories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, row *expenseDatamodel.Expense) error
	Update(ctx context.Context, id int64, values map[string]any) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo      RepositoryAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func ErrExpenseNotFound() *internal.AppError {
	return internal.NewNotFoundError("Expense not found", internal.ErrCodeExpenseNotFound)
}

// List returns every expense, newest date first.
func (s *Service) List(ctx context.Context) ([]*Expense, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err)
		return nil, store.AsAppError(err, nil)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) ListBetween(ctx context.Context, from, to datamodel.Date) ([]*Expense, error) {
	rows, err := s.repo.GetBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to list expenses in window", "error", err, "from", from, "to", to)
		return nil, store.AsAppError(err, nil)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, store.AsAppError(err, ErrExpenseNotFound())
	}
	return FromDataModel(row), nil
}

// Categories returns the distinct categories already in use, for form suggestions.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		s.logger.Error("failed to list expense categories", "error", err)
		return nil, store.AsAppError(err, nil)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *Service) Create(ctx context.Context, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("expense validation failed", "error", err)
		return nil, err
	}

	row := ToDataModel(NewExpense(dto))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create expense", "error", err, "date", dto.Date)
		return nil, store.AsAppError(err, nil)
	}

	s.logger.Info("expense created", "expense_id", row.ID, "category", row.Category, "amount", row.Amount)
	events.Notify(ctx, s.publisher, s.logger, events.RecordChanged(entityName, events.ActionCreated, row.ID, map[string]interface{}{
		"date":     row.Date.String(),
		"category": row.Category,
	}))

	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("expense validation failed", "error", err, "expense_id", id)
		return nil, err
	}

	if err := s.repo.Update(ctx, id, dto.Values()); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, store.AsAppError(err, ErrExpenseNotFound())
	}

	s.logger.Info("expense updated", "expense_id", id)
	events.Notify(ctx, s.publisher, s.logger, events.RecordChanged(entityName, events.ActionUpdated, id, nil))

	return s.Get(ctx, id)
}

// Delete removes the expense only. Purchases that reference it are kept and
// show no expense afterwards.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return store.AsAppError(err, ErrExpenseNotFound())
	}

	s.logger.Info("expense deleted", "expense_id", id)
	events.Notify(ctx, s.publisher, s.logger, events.RecordChanged(entityName, events.ActionDeleted, id, nil))
	return nil
}
