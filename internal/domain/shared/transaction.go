package shared

import "context"

// TransactionManager runs fn in a transaction. Repositories called with
// the context passed to fn take part in that transaction. The transaction
// is committed when fn returns nil and rolled back otherwise.
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
