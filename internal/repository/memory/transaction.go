package memory

import (
	"context"

	"docvault/internal/domain/repositories"
)

// TransactionManager implements repositories.TransactionManager for the memory store
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(store *Store) repositories.TransactionManager {
	return &TransactionManager{store: store}
}

// ExecTx executes fn under the store's write lock. The state is snapshotted
// first and restored if fn returns an error (or panics), so a failed
// operation leaves the store unchanged. Nested calls reuse the outer transaction.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if repositories.InTx(ctx, tm.store) {
		return fn(ctx)
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	snapshot := tm.store.st.clone()
	committed := false
	defer func() {
		if !committed {
			tm.store.st = snapshot
		}
	}()

	// Store transaction in context so repositories skip their own locking
	txCtx := repositories.WithTx(ctx, tm.store)

	if err := fn(txCtx); err != nil {
		return err
	}

	committed = true
	return nil
}
