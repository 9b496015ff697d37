// Package store runs units of work against the relational database.
package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Transact runs fn in one transaction. Any error from fn rolls everything
// back; errors that are not already classified become storage errors.
func Transact(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	slog.Error("transaction rolled back", "action", "transact", "error", err)
	return apperr.FromDB(err, "record")
}

// ForUpdate locks the selected rows until the transaction ends.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// ForShare keeps the selected rows from being updated or deleted until the
// transaction ends, while letting other readers take the same lock.
func ForShare(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "SHARE"})
}

// Relations implements integrity.Store over a transaction handle.
type Relations struct {
	tx *gorm.DB
}

func NewRelations(tx *gorm.DB) *Relations {
	return &Relations{tx: tx}
}

func (r *Relations) ReferencingIDs(ctx context.Context, table, column string, ids []uint) ([]uint, error) {
	var out []uint
	err := r.tx.WithContext(ctx).
		Table(table).
		Where(clause.IN{Column: clause.Column{Name: column}, Values: toValues(ids)}).
		Order("id").
		Pluck("id", &out).Error
	return out, err
}

func (r *Relations) ClearColumn(ctx context.Context, table, column string, ids []uint) error {
	return r.tx.WithContext(ctx).
		Table(table).
		Where(clause.IN{Column: clause.Column{Name: column}, Values: toValues(ids)}).
		Update(column, gorm.Expr("NULL")).Error
}

func (r *Relations) DeleteIDs(ctx context.Context, table string, ids []uint) error {
	return r.tx.WithContext(ctx).
		Exec("DELETE FROM ? WHERE id IN ?", clause.Table{Name: table}, ids).Error
}

func toValues(ids []uint) []interface{} {
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
