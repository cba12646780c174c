package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs a group of repository calls atomically: either all
// of their effects are kept or none are.
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error
}

// txContextKey is the type for transaction context keys
type txContextKey struct{}

// WithTx marks ctx as running inside a transaction owned by owner.
// Repositories belonging to the same owner see the mark and skip their own locking.
func WithTx(ctx context.Context, owner any) context.Context {
	return context.WithValue(ctx, txContextKey{}, owner)
}

// InTx reports whether ctx carries a transaction owned by owner
func InTx(ctx context.Context, owner any) bool {
	if ctx == nil {
		return false
	}
	return ctx.Value(txContextKey{}) == owner
}
