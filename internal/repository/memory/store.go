// Package memory provides mutex-guarded in-memory implementations of the
// library repositories. They back the service tests and the no-database dev
// mode; semantics mirror the postgres implementations, including sentinel
// error wrapping.
package memory

import (
	"context"
	"sort"
	"sync"

	models "satchel/internal/domain/models/library"
	"satchel/internal/domain/repositories"
)

// Store is the shared backing state for the in-memory repositories.
type Store struct {
	mu      sync.RWMutex
	folders map[string]*models.Folder
	files   map[string]*models.File
	seq     int // insertion counter, keeps ListAll order stable
	order   map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		folders: make(map[string]*models.Folder),
		files:   make(map[string]*models.File),
		order:   make(map[string]int),
	}
}

func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

func (s *Store) sortByInsertion(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return s.order[ids[i]] < s.order[ids[j]] })
}

// TransactionManager is the in-memory stand-in for the postgres transaction
// manager: the store has no multi-statement visibility to isolate, so ExecTx
// serializes writers with the store lock held by each repository call and
// simply runs fn.
type TransactionManager struct{}

// NewTransactionManager creates a new no-op transaction manager
func NewTransactionManager() repositories.TransactionManager {
	return &TransactionManager{}
}

// ExecTx executes a function; in-memory commits cannot fail
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
