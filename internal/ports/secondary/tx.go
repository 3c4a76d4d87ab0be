package secondary

import "context"

// TxManager runs fn inside one database transaction. The transaction handle
// travels in the context handed to fn, so every repository call made with
// that context shares the transaction. Guard reads and the mutations they
// gate must run under the same WithinTx call.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
