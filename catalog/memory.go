package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
)

// Memory keeps the catalog in process memory, seeded from the embedded
// dataset. Listing order is insertion order, matching the reference data.
type Memory struct {
	mu       sync.RWMutex
	products []domain.Product
	farmers  []domain.Farmer
}

// NewMemory builds a catalog from the given seed. Pass the result of
// LoadSeed for the demo dataset, or a custom Seed in tests.
func NewMemory(seed Seed) *Memory {
	m := &Memory{
		products: make([]domain.Product, len(seed.Products)),
		farmers:  make([]domain.Farmer, len(seed.Farmers)),
	}
	copy(m.products, seed.Products)
	copy(m.farmers, seed.Farmers)
	return m
}

func (m *Memory) GetProduct(_ context.Context, id string) (domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (m *Memory) ListProducts(_ context.Context, f Filter) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		if matches(p, f) {
			result = append(result, p)
		}
	}
	return result, nil
}

func matches(p domain.Product, f Filter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.FeaturedOnly && !p.IsFeatured {
		return false
	}
	if f.FarmerID != "" && p.FarmerID != f.FarmerID {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.FarmerName), q) {
			return false
		}
	}
	return true
}

func (m *Memory) CreateProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	if p.Name == "" {
		return domain.Product{}, domain.NewValidationError("name", "is required")
	}
	if !p.Category.Valid() {
		return domain.Product{}, domain.NewValidationError("category", "is unknown")
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, p)
	return p, nil
}

func (m *Memory) UpdateProduct(_ context.Context, p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == p.ID {
			p.CreatedAt = m.products[i].CreatedAt
			p.UpdatedAt = time.Now()
			m.products[i] = p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *Memory) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *Memory) SetFeatured(_ context.Context, id string, featured bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i].IsFeatured = featured
			m.products[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *Memory) GetFarmer(_ context.Context, id string) (domain.Farmer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.farmers {
		if f.ID == id {
			return f, nil
		}
	}
	return domain.Farmer{}, domain.ErrNotFound
}

func (m *Memory) ListFarmers(_ context.Context) ([]domain.Farmer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.Farmer, len(m.farmers))
	copy(result, m.farmers)
	return result, nil
}

func (m *Memory) Close() error { return nil }
