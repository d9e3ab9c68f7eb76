package product

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"product-catalog/internal/domain"
)

// Memory is a mutex-guarded in-memory Repository. It backs handler and HTTP
// tests and mirrors the store semantics of the postgres implementation,
// including case-insensitive matching and server-assigned timestamps.
type Memory struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]domain.Product

	// now is swappable so tests can control timestamps.
	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		items: make(map[int64]domain.Product),
		now:   time.Now,
	}
}

// SetClock overrides the timestamp source. Test use only.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *Memory) GetAll(_ context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(domain.Product) bool { return true }), nil
}

func (m *Memory) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.items[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *Memory) GetByCategory(_ context.Context, category string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(p domain.Product) bool {
		return p.Category != nil && strings.EqualFold(*p.Category, category)
	}), nil
}

func (m *Memory) Search(_ context.Context, term string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	needle := strings.ToLower(term)
	return m.list(func(p domain.Product) bool {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			return true
		}
		return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), needle)
	}), nil
}

func (m *Memory) GetActive(_ context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(p domain.Product) bool { return p.IsActive }), nil
}

func (m *Memory) Add(_ context.Context, p domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.ID = m.seq
	ts := m.now().UTC()
	p.CreatedAt = ts
	p.UpdatedAt = ts
	m.items[p.ID] = p
	return &p, nil
}

func (m *Memory) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[p.ID]
	if !ok {
		return nil, nil
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = m.now().UTC()
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}
	m.items[p.ID] = p
	return &p, nil
}

func (m *Memory) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func (m *Memory) Exists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[id]
	return ok, nil
}

func (m *Memory) list(match func(domain.Product) bool) []domain.Product {
	var result []domain.Product
	for _, p := range m.items {
		if match(p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}
