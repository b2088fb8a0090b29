package store

import (
	"context"
	"sort"
	"sync"

	perrors "github.com/shopkit/product-api/internal/errors"
)

// inMemory implements ProductStore using an in-memory map.
type inMemory struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// FindAll retrieves all products ordered by ID.
func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

// Create creates a new product with availability defaulted to true.
// IDs are assigned sequentially and never reused.
func (s *inMemory) Create(_ context.Context, name string, price float64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:           s.nextID,
		Name:         name,
		Price:        price,
		Availability: true,
	}
	s.nextID++
	s.products[product.ID] = product

	return &product, nil
}

// Update replaces the name, price and availability of an existing product.
func (s *inMemory) Update(_ context.Context, id int64, name string, price float64, availability bool) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return nil, perrors.ErrProductNotFound
	}
	product := Product{ID: id, Name: name, Price: price, Availability: availability}
	s.products[id] = product
	return &product, nil
}

// ToggleAvailability flips the availability flag of an existing product.
func (s *inMemory) ToggleAvailability(_ context.Context, id int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	product.Availability = !product.Availability
	s.products[id] = product
	return &product, nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return perrors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}
