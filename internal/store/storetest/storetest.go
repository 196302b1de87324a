// Package storetest opens throwaway in-memory record stores for specs.
package storetest

import (
	expenseDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/expense"
	incomeDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/income"
	purchaseDatamodel "github.com/frahmantamala/restaurant-ledger/internal/core/datamodel/purchase"
	"github.com/frahmantamala/restaurant-ledger/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated sqlite :memory: database. The pool is pinned to a
// single connection so concurrent fetches see the same database.
func Open() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc:                                  store.Now,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&incomeDatamodel.Income{},
		&expenseDatamodel.Expense{},
		&purchaseDatamodel.Purchase{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
