package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager makes "validate + mutate + commit" one logical
// transaction. Every mutation of the library tree runs through ExecTx so the
// check-then-act steps (cycle check, bootstrap existence check) are isolated
// from concurrent writers.
type TransactionManager interface {
	// ExecTx executes a function within a transaction. A commit failure is
	// reported wrapped in domain.ErrCommitFailed; the in-memory view built
	// inside fn must then be treated as provisional.
	ExecTx(ctx context.Context, fn TxFn) error
}
