package store

import (
	"context"
	"slices"
	"sync"
)

var (
	_ ProductStore = (*FileStore[Product])(nil)
	_ SaleStore    = (*FileStore[Sale])(nil)
	_ ProductStore = (*InMemory[Product])(nil)
	_ SaleStore    = (*InMemory[Sale])(nil)
)

// InMemory implements ProductStore and SaleStore using a slice held in memory.
// Save failures can be scripted with QueueSaveErrors to exercise error paths.
type InMemory[T any] struct {
	mu       sync.RWMutex
	items    []T
	saves    int
	loadErr  error
	saveErrs []error
}

// NewInMemoryProductStore creates a new in-memory ProductStore holding the given products.
func NewInMemoryProductStore(products ...Product) *InMemory[Product] {
	return &InMemory[Product]{items: slices.Clone(products)}
}

// NewInMemorySaleStore creates a new in-memory SaleStore holding the given sales.
func NewInMemorySaleStore(sales ...Sale) *InMemory[Sale] {
	return &InMemory[Sale]{items: slices.Clone(sales)}
}

// Load returns a copy of the stored collection.
func (s *InMemory[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loadErr != nil {
		return []T{}, s.loadErr
	}
	items := make([]T, len(s.items))
	copy(items, s.items)
	return items, nil
}

// Save replaces the stored collection with a copy of items,
// unless the next queued save error is non-nil.
func (s *InMemory[T]) Save(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.saveErrs) > 0 {
		err := s.saveErrs[0]
		s.saveErrs = s.saveErrs[1:]
		if err != nil {
			return err
		}
	}
	s.items = make([]T, len(items))
	copy(s.items, items)
	s.saves++
	return nil
}

// QueueSaveErrors makes the next Save calls return errs in order. A nil entry lets that save succeed.
func (s *InMemory[T]) QueueSaveErrors(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErrs = append(s.saveErrs, errs...)
}

// SetLoadError makes every Load return an empty collection and err.
func (s *InMemory[T]) SetLoadError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// Snapshot returns a copy of the stored collection without going through Load.
func (s *InMemory[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Saves reports how many saves have succeeded.
func (s *InMemory[T]) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
