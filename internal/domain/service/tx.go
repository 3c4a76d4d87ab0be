package service

import (
	"context"
	"errors"

	"github.com/unihub/unihub-api/internal/ports/secondary"
)

// runTx executes fn inside a transaction, retrying once on a serialization
// conflict with a fresh transaction. A second conflict surfaces as
// ErrTxConflict.
func runTx(ctx context.Context, tx secondary.TxManager, fn func(ctx context.Context) error) error {
	err := tx.WithinTx(ctx, fn)
	if !errors.Is(err, secondary.ErrSerialization) {
		return err
	}
	if err = tx.WithinTx(ctx, fn); errors.Is(err, secondary.ErrSerialization) {
		return ErrTxConflict
	}
	return err
}
