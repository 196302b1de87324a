package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal"
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
	ListByExpenseDate(ctx context.Context, from, to datamodel.Date) ([]*purchase.Purchase, error)
}

type Service struct {
	incomes   IncomeLister
	expenses  ExpenseLister
	purchases PurchaseLister
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Service)

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

func ErrInvalidRange(from, to datamodel.Date) *internal.AppError {
	return internal.NewValidationError("from must not be after to", internal.ErrCodeInvalidDateRange).
		WithDetails(map[string]string{"from": from.String(), "to": to.String()})
}

// Today is the default bound for both ends of the window.
func (s *Service) Today() datamodel.Date {
	return datamodel.Today(s.now())
}

// Generate builds the summary for the inclusive window. Empty bounds
// default to today.
func (s *Service) Generate(ctx context.Context, from, to datamodel.Date) (*Summary, error) {
	if from.IsZero() {
		from = s.Today()
	}
	if to.IsZero() {
		to = s.Today()
	}
	if to.Before(from) {
		return nil, ErrInvalidRange(from, to)
	}

	var (
		incomes   []*income.Income
		expenses  []*expense.Expense
		purchases []*purchase.Purchase
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomes, err = s.incomes.ListBetween(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListBetween(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		purchases, err = s.purchases.ListByExpenseDate(gctx, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load report window", "error", err, "from", from, "to", to)
		return nil, err
	}

	summary := Summarize(from, to, incomes, expenses, purchases)
	s.logger.Info("report generated",
		"from", from,
		"to", to,
		"income_rows", len(incomes),
		"expense_rows", len(expenses),
		"purchase_rows", len(purchases))
	return summary, nil
}

// Summarize folds already filtered rows into report totals.
func Summarize(from, to datamodel.Date, incomes []*income.Income, expenses []*expense.Expense, purchases []*purchase.Purchase) *Summary {
	sumIncome := func(field func(*income.Income) float64) decimal.Decimal {
		return money.Sum(incomes, func(i *income.Income) decimal.Decimal { return money.Of(field(i)) })
	}

	totalIncome := sumIncome(func(i *income.Income) float64 { return i.TotalIncome })
	cash := sumIncome(func(i *income.Income) float64 { return i.CashAmount })
	credit := sumIncome(func(i *income.Income) float64 { return i.CreditAmount })
	other := sumIncome(func(i *income.Income) float64 { return i.OtherAmount })
	actualCash := sumIncome(func(i *income.Income) float64 { return i.ActualCashReceived })

	totalExpenses := money.Sum(expenses, func(e *expense.Expense) decimal.Decimal { return money.Of(e.Amount) })
	totalPurchases := money.Sum(purchases, func(p *purchase.Purchase) decimal.Decimal {
		return purchase.LineTotal(p.Quantity, p.PricePerUnit)
	})

	return &Summary{
		From:              from,
		To:                to,
		TotalIncome:       money.Float(totalIncome),
		TotalExpenses:     money.Float(totalExpenses),
		TotalPurchases:    money.Float(totalPurchases),
		CashAfterExpenses: money.Float(actualCash.Sub(totalExpenses)),
		SurplusDeficit:    money.Float(totalIncome.Sub(totalExpenses)),
		IncomeBreakdown: Breakdown{
			Cash:       money.Float(cash),
			Credit:     money.Float(credit),
			Other:      money.Float(other),
			ActualCash: money.Float(actualCash),
		},
	}
}
