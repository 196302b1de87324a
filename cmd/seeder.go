package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	"github.com/frahmantamala/restaurant-ledger/internal/expense"
	"github.com/frahmantamala/restaurant-ledger/internal/income"
	"github.com/frahmantamala/restaurant-ledger/internal/purchase"
	"github.com/frahmantamala/restaurant-ledger/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a week of sample restaurant income, expenses and purchases.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		logger.InitWithLevel(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
		lg := logger.LoggerWrapper()

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"purchases", "expenses", "income"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing income, expenses and purchases")
		}

		gormDB, err := openGorm(cfg.Database, db)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}
		svc := buildServices(cfg, gormDB, nil, lg)

		ctx := context.Background()
		now := clock(cfg)()
		if err := seed(ctx, svc, now); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
	},
}

type seedExpense struct {
	category    string
	description string
	amount      float64
	items       []purchase.CreatePurchaseDTO
}

func seed(ctx context.Context, svc *Services, now time.Time) error {
	incomes, expensesSeeded, purchasesSeeded := 0, 0, 0

	for offset := 6; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		date := datamodel.NewDate(day)
		base := 800 + float64(offset*35)

		_, err := svc.Income.Create(ctx, income.CreateIncomeDTO{
			Date:               date,
			TotalIncome:        base,
			CashAmount:         base * 0.4,
			CreditAmount:       base * 0.5,
			OtherAmount:        base * 0.1,
			ActualCashReceived: base*0.4 - float64(offset%3),
		})
		if err != nil {
			return fmt.Errorf("income %s: %w", date, err)
		}
		incomes++

		for _, se := range expensesFor(offset) {
			desc := se.description
			exp, err := svc.Expense.Create(ctx, expense.CreateExpenseDTO{
				Date:        date,
				Category:    se.category,
				Description: &desc,
				Amount:      se.amount,
			})
			if err != nil {
				return fmt.Errorf("expense %s %s: %w", date, se.category, err)
			}
			expensesSeeded++

			for _, item := range se.items {
				item.ExpenseID = exp.ID
				if _, err := svc.Purchase.Create(ctx, item); err != nil {
					return fmt.Errorf("purchase %s: %w", item.ItemName, err)
				}
				purchasesSeeded++
			}
		}
	}

	fmt.Printf("Seeded %d income rows, %d expenses and %d purchases\n", incomes, expensesSeeded, purchasesSeeded)
	return nil
}

func expensesFor(offset int) []seedExpense {
	out := []seedExpense{{
		category:    "Produce",
		description: "Morning market run",
		amount:      120,
		items: []purchase.CreatePurchaseDTO{
			{ItemName: "Tomatoes", Quantity: 10, PricePerUnit: 2.5},
			{ItemName: "Onions", Quantity: 8, PricePerUnit: 1.25},
			{ItemName: "Basil", Quantity: 4, PricePerUnit: 3},
		},
	}}
	if offset%2 == 0 {
		out = append(out, seedExpense{
			category:    "Meat",
			description: "Butcher delivery",
			amount:      260,
			items: []purchase.CreatePurchaseDTO{
				{ItemName: "Chicken thighs", Quantity: 12, PricePerUnit: 6.5},
				{ItemName: "Ground beef", Quantity: 10, PricePerUnit: 8},
			},
		})
	}
	if offset == 3 {
		out = append(out, seedExpense{
			category:    "Utilities",
			description: "Gas bill",
			amount:      180,
		})
	}
	return out
}
