package secondary

import "errors"

// Storage-layer error classes. Adapters translate driver errors into these so
// the service layer never inspects gorm or pq errors directly.
var (
	// ErrNotFound - the requested row does not exist.
	ErrNotFound = errors.New("storage: not found")
	// ErrDuplicate - an insert violated a uniqueness constraint.
	ErrDuplicate = errors.New("storage: duplicate key")
	// ErrSerialization - the transaction lost a write conflict and may be
	// retried on a fresh transaction.
	ErrSerialization = errors.New("storage: serialization conflict")
)
