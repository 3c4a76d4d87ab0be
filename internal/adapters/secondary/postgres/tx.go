package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/unihub/unihub-api/internal/ports/secondary"
)

type ctxKey struct{}

var txKey ctxKey

// TxManager runs functions inside a database transaction and threads the
// transaction handle through the context, so guard reads and mutations made
// by the wrapped function share one transaction.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{
		db: db,
	}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls join the transaction already in the context.
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
	return translate(err)
}

// dbFrom returns the transaction from the context, or the fallback handle
// when the call runs outside a transaction.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

// translate maps driver errors onto the storage port's error set.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return secondary.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return secondary.ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return secondary.ErrSerialization
		case "23505":
			return secondary.ErrDuplicate
		}
	}
	return err
}
