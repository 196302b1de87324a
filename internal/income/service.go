package income

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/restaurant-ledger/internal"
	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	incomeDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/income"
	"github.com/frahmantamala/restaurant-ledger/internal/core/events"
	"github.com/frahmantamala/restaurant-ledger/internal/store"
)

const entityName = "income"

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]incomeDatamodel.Income, error)
	GetBetween(ctx context.Context, from, to datamodel.Date) ([]incomeDatamodel.Income, error)
	GetByID(ctx context.Context, id int64) (*incomeDatamodel.Income, error)
	Create(ctx context.Context, row *incomeDatamodel.Income) error
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

func ErrIncomeNotFound() *internal.AppError {
	return internal.NewNotFoundError("Income record not found", internal.ErrCodeIncomeNotFound)
}

// List returns every income row, newest date first.
func (s *Service) List(ctx context.Context) ([]*Income, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list income", "error", err)
		return nil, store.AsAppError(err, nil)
	}
	return FromDataModelSlice(rows), nil
}

// ListBetween returns rows whose date falls in the inclusive window.
func (s *Service) ListBetween(ctx context.Context, from, to datamodel.Date) ([]*Income, error) {
	rows, err := s.repo.GetBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to list income in window", "error", err, "from", from, "to", to)
		return nil, store.AsAppError(err, nil)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Income, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get income", "error", err, "income_id", id)
		return nil, store.AsAppError(err, ErrIncomeNotFound())
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto CreateIncomeDTO) (*Income, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("income validation failed", "error", err)
		return nil, err
	}

	row := ToDataModel(NewIncome(dto))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create income", "error", err, "date", dto.Date)
		return nil, store.AsAppError(err, nil)
	}

	s.logger.Info("income created", "income_id", row.ID, "date", row.Date, "total_income", row.TotalIncome)
	events.Notify(ctx, s.publisher, s.logger, events.RecordChanged(entityName, events.ActionCreated, row.ID, map[string]interface{}{
		"date": row.Date.String(),
	}))

	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto CreateIncomeDTO) (*Income, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("income validation failed", "error", err, "income_id", id)
		return nil, err
	}

	if err := s.repo.Update(ctx, id, dto.Values()); err != nil {
		s.logger.Error("failed to update income", "error", err, "income_id", id)
		return nil, store.AsAppError(err, ErrIncomeNotFound())
	}

	s.logger.Info("income updated", "income_id", id)
	events.Notify(ctx, s.publisher, s.logger, events.RecordChanged(entityName, events.ActionUpdated, id, nil))

	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete income", "error", err, "income_id", id)
		return store.AsAppError(err, ErrIncomeNotFound())
	}

	s.logger.Info("income deleted", "income_id", id)
	events.Notify(ctx, s.publisher, s.logger, events.RecordChanged(entityName, events.ActionDeleted, id, nil))
	return nil
}
