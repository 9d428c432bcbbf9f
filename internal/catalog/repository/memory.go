package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/askbook/askbook-api/internal/catalog"
	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("book not found")
)

// MemoryRepo is an in-memory catalog used when no database is configured and in tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []string
	store map[string]catalog.Book
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]catalog.Book)}
}

// InsertMany stores copies of the given books, assigning an "_id" where absent.
func (m *MemoryRepo) InsertMany(_ context.Context, books []catalog.Book) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range books {
		doc := copyBook(b)
		id, _ := doc["_id"].(string)
		if id == "" {
			id = uuid.NewString()
			doc["_id"] = id
		}
		if _, exists := m.store[id]; !exists {
			m.order = append(m.order, id)
		}
		m.store[id] = doc
	}
	return len(books), nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (catalog.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.store[id]; ok {
		return copyBook(b), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) Find(_ context.Context, f catalog.Filter) ([]catalog.Book, error) {
	preds := f.Predicates()
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []catalog.Book{}
	for _, id := range m.order {
		b := m.store[id]
		if matchesAll(b, preds) {
			out = append(out, copyBook(b))
		}
	}
	return out, nil
}

func matchesAll(b catalog.Book, preds []catalog.Predicate) bool {
	for _, p := range preds {
		if !p.Matches(b[p.Field]) {
			return false
		}
	}
	return true
}

func copyBook(b catalog.Book) catalog.Book {
	out := make(catalog.Book, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
