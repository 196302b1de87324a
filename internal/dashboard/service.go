package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	"github.com/frahmantamala/restaurant-ledger/internal/core/money"
	"github.com/frahmantamala/restaurant-ledger/internal/expense"
	"github.com/frahmantamala/restaurant-ledger/internal/income"
	"github.com/frahmantamala/restaurant-ledger/internal/purchase"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type IncomeLister interface {
	ListBetween(ctx context.Context, from, to datamodel.Date) ([]*income.Income, error)
}

type ExpenseLister interface {
	ListBetween(ctx context.Context, from, to datamodel.Date) ([]*expense.Expense, error)
}

type PurchaseLister interface {
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*purchase.Purchase, error)
}

type Service struct {
	incomes   IncomeLister
	expenses  ExpenseLister
	purchases PurchaseLister
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Service)

// WithClock replaces time.Now, e.g. to pin the restaurant timezone.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(incomes IncomeLister, expenses ExpenseLister, purchases PurchaseLister, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		incomes:   incomes,
		expenses:  expenses,
		purchases: purchases,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats runs the three window queries concurrently and folds each one.
// Any failed query fails the whole view.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	w := MonthToDate(s.now())

	var (
		incomes   []*income.Income
		expenses  []*expense.Expense
		purchases []*purchase.Purchase
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomes, err = s.incomes.ListBetween(gctx, w.From, w.To)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListBetween(gctx, w.From, w.To)
		return err
	})
	g.Go(func() error {
		var err error
		purchases, err = s.purchases.ListCreatedBetween(gctx, w.CreatedFrom, w.CreatedTo)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load dashboard window", "error", err, "from", w.From, "to", w.To)
		return nil, err
	}

	totalIncome := money.Sum(incomes, func(i *income.Income) decimal.Decimal { return money.Of(i.TotalIncome) })
	totalExpenses := money.Sum(expenses, func(e *expense.Expense) decimal.Decimal { return money.Of(e.Amount) })
	totalPurchases := money.Sum(purchases, func(p *purchase.Purchase) decimal.Decimal {
		return purchase.LineTotal(p.Quantity, p.PricePerUnit)
	})

	return &Stats{
		From:           w.From,
		To:             w.To,
		TotalIncome:    money.Float(totalIncome),
		TotalExpenses:  money.Float(totalExpenses),
		TotalPurchases: money.Float(totalPurchases),
		NetProfit:      money.Float(totalIncome.Sub(totalExpenses)),
	}, nil
}
