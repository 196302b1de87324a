package purchase

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal"
	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	purchaseDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/purchase"
	"github.com/frahmantamala/restaurant-ledger/internal/core/events"
	"github.com/frahmantamala/restaurant-ledger/internal/store"
)

const entityName = "purchase"

type RepositoryAPI interface {
	// GetAll lists every purchase, newest first, with its expense when it still exists.
	GetAll(ctx context.Context) ([]purchaseDatamodel.Purchase, error)
	// GetCreatedBetween filters on the purchase's own created_at.
	GetCreatedBetween(ctx context.Context, from, to time.Time) ([]purchaseDatamodel.Purchase, error)
	// GetByExpenseDate inner joins expenses and filters on the expense date.
	GetByExpenseDate(ctx context.Context, from, to datamodel.Date) ([]purchaseDatamodel.Purchase, error)
	GetByID(ctx context.Context, id int64) (*purchaseDatamodel.Purchase, error)
	Create(ctx context.Context, row *purchaseDatamodel.Purchase) error
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

func ErrPurchaseNotFound() *internal.AppError {
	return internal.NewNotFoundError("Purchase not found", internal.ErrCodePurchaseNotFound)
}

func (s *Service) List(ctx context.Context) ([]*Purchase, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list purchases", "error", err)
		return nil, store.AsAppError(err, nil)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*Purchase, error) {
	rows, err := s.repo.GetCreatedBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to list purchases by creation time", "error", err, "from", from, "to", to)
		return nil, store.AsAppError(err, nil)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) ListByExpenseDate(ctx context.Context, from, to datamodel.Date) ([]*Purchase, error) {
	rows, err := s.repo.GetByExpenseDate(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to list purchases by expense date", "error", err, "from", from, "to", to)
		return nil, store.AsAppError(err, nil)
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Purchase, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get purchase", "error", err, "purchase_id", id)
		return nil, store.AsAppError(err, ErrPurchaseNotFound())
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto CreatePurchaseDTO) (*Purchase, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("purchase validation failed", "error", err)
		return nil, err
	}

	row := ToDataModel(NewPurchase(dto))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create purchase", "error", err, "expense_id", dto.ExpenseID)
		return nil, store.AsAppError(err, nil)
	}

	s.logger.Info("purchase created", "purchase_id", row.ID, "expense_id", row.ExpenseID, "item_name", row.ItemName)
	events.Notify(ctx, s.publisher, s.logger, events.RecordChanged(entityName, events.ActionCreated, row.ID, map[string]interface{}{
		"expense_id": row.ExpenseID,
	}))

	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, dto CreatePurchaseDTO) (*Purchase, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("purchase validation failed", "error", err, "purchase_id", id)
		return nil, err
	}

	if err := s.repo.Update(ctx, id, dto.Values()); err != nil {
		s.logger.Error("failed to update purchase", "error", err, "purchase_id", id)
		return nil, store.AsAppError(err, ErrPurchaseNotFound())
	}

	s.logger.Info("purchase updated", "purchase_id", id)
	events.Notify(ctx, s.publisher, s.logger, events.RecordChanged(entityName, events.ActionUpdated, id, nil))

	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete purchase", "error", err, "purchase_id", id)
		return store.AsAppError(err, ErrPurchaseNotFound())
	}

	s.logger.Info("purchase deleted", "purchase_id", id)
	events.Notify(ctx, s.publisher, s.logger, events.RecordChanged(entityName, events.ActionDeleted, id, nil))
	return nil
}
