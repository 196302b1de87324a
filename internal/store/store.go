// Package store is the client of the hosted record store. Every table is
// reached through the same four calls and every failure comes back as a
// wrapped ErrUnavailable or ErrNotFound value.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound    = errors.New("store: record not found")
	ErrUnavailable = errors.New("store: service unavailable")
)

// Range is an inclusive bound From <= column <= To. A nil bound is open.
// Table names a joined relation; empty means the queried table.
type Range struct {
	Table  string
	Column string
	From   any
	To     any
}

// Join attaches a belongs-to relation. Inner joins drop rows without a
// match; outer ones load the relation and leave it nil when absent.
type Join struct {
	Relation string
	Inner    bool
}

type Query struct {
	Ranges     []Range
	Joins      []Join
	OrderBy    string
	Descending bool
}

// Now stamps created_at and updated_at in UTC. sqlite compares timestamps as
// text, so rows and range bounds must share one offset.
func Now() time.Time {
	return time.Now().UTC()
}

type Table[T any] struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewTable[T any](db *gorm.DB, timeout time.Duration) *Table[T] {
	return &Table[T]{db: db, timeout: timeout}
}

func (t *Table[T]) List(ctx context.Context, q Query) ([]T, error) {
	ctx, cancel := internal.WithTimeout(ctx, t.timeout)
	defer cancel()

	tx := t.db.WithContext(ctx).Model(new(T))
	for _, j := range q.Joins {
		if j.Inner {
			tx = tx.InnerJoins(j.Relation)
		} else {
			tx = tx.Preload(j.Relation)
		}
	}
	for _, r := range q.Ranges {
		tx = applyRange(tx, r)
	}
	if q.OrderBy != "" {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: q.OrderBy},
			Desc:   q.Descending,
		})
	}

	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, unavailable("list", err)
	}
	return rows, nil
}

func applyRange(tx *gorm.DB, r Range) *gorm.DB {
	table := r.Table
	if table == "" {
		table = clause.CurrentTable
	}
	col := clause.Column{Table: table, Name: r.Column}
	if !isOpen(r.From) {
		tx = tx.Where(clause.Gte{Column: col, Value: r.From})
	}
	if !isOpen(r.To) {
		tx = tx.Where(clause.Lte{Column: col, Value: r.To})
	}
	return tx
}

// isOpen treats nil and zero dates or times as a missing bound.
func isOpen(bound any) bool {
	if bound == nil {
		return true
	}
	if z, ok := bound.(interface{ IsZero() bool }); ok {
		return z.IsZero()
	}
	return false
}

func (t *Table[T]) Get(ctx context.Context, id int64, joins ...Join) (*T, error) {
	ctx, cancel := internal.WithTimeout(ctx, t.timeout)
	defer cancel()

	tx := t.db.WithContext(ctx)
	for _, j := range joins {
		tx = tx.Preload(j.Relation)
	}

	var row T
	err := tx.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, unavailable("get", err)
	}
	return &row, nil
}

// Distinct returns the sorted distinct non-empty values of one text column.
func (t *Table[T]) Distinct(ctx context.Context, column string) ([]string, error) {
	ctx, cancel := internal.WithTimeout(ctx, t.timeout)
	defer cancel()

	var values []string
	err := t.db.WithContext(ctx).Model(new(T)).
		Where(clause.Neq{Column: clause.Column{Name: column}, Value: ""}).
		Distinct(column).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}}).
		Pluck(column, &values).Error
	if err != nil {
		return nil, unavailable("distinct", err)
	}
	return values, nil
}

func (t *Table[T]) Insert(ctx context.Context, row *T) error {
	ctx, cancel := internal.WithTimeout(ctx, t.timeout)
	defer cancel()

	if err := t.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return unavailable("insert", err)
	}
	return nil
}

// UpdateByID overwrites the given columns; zero values are written too.
func (t *Table[T]) UpdateByID(ctx context.Context, id int64, values map[string]any) error {
	ctx, cancel := internal.WithTimeout(ctx, t.timeout)
	defer cancel()

	res := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return unavailable("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

func (t *Table[T]) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := internal.WithTimeout(ctx, t.timeout)
	defer cancel()

	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return unavailable("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

func unavailable(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s timed out: %v", ErrUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

// AsAppError maps a store failure onto the API error taxonomy.
func AsAppError(err error, notFound *internal.AppError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) && notFound != nil {
		return notFound
	}
	return internal.NewStoreError("record store request failed", err)
}
