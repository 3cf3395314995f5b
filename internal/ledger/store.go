package ledger

import (
	"sync"

	"github.com/mkopodev/schedule-service/internal/models"
)

// Store is an in-memory payment ledger keyed by loan reference. It caches
// transactions lifted from bank statements so reconcile requests can name a
// loan instead of shipping the ledger inline. It owns no persistence; the
// statement files remain the system of record.
type Store struct {
	mu    sync.RWMutex
	byRef map[string][]models.PaymentTransaction
}

// NewStore initializes an empty ledger store
func NewStore() *Store {
	return &Store{byRef: make(map[string][]models.PaymentTransaction)}
}

// Add appends transactions under a loan reference. Entries without a
// reference cannot be attributed and are dropped.
func (s *Store) Add(entries ...models.StatementEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if e.Reference == "" {
			continue
		}
		s.byRef[e.Reference] = append(s.byRef[e.Reference], e.Transaction)
	}
}

// Payments returns a copy of the transactions recorded for a loan reference,
// in arrival order. Nil when the reference is unknown.
func (s *Store) Payments(ref string) []models.PaymentTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txs, ok := s.byRef[ref]
	if !ok {
		return nil
	}
	out := make([]models.PaymentTransaction, len(txs))
	copy(out, txs)
	return out
}

// Size returns the number of loan references currently tracked.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byRef)
}
