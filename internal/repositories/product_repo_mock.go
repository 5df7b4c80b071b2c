package repositories

import (
	"sort"
	"sync"

	"github.com/IleanaLopez91/dashboardPERN/internal/models"
)

// MockProductRepository is an in-memory implementation of
// ProductRepository, useful for running the API without a database.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[uint]models.Product
	nextID   uint
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// GetAll returns at most two product summaries ordered by price descending.
func (r *MockProductRepository) GetAll() ([]models.ProductSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Price > all[j].Price })

	summaries := make([]models.ProductSummary, 0, listLimit)
	for _, p := range all {
		if len(summaries) == listLimit {
			break
		}
		summaries = append(summaries, models.ProductSummary{
			Name:         p.Name,
			Price:        p.Price,
			Availability: p.Availability,
		})
	}
	return summaries, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Create adds a new product, assigning the next free id.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

// Update overwrites the mutable fields of an existing product.
func (r *MockProductRepository) Update(id uint, name string, price float64, availability bool) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	product.Name = name
	product.Price = price
	product.Availability = availability
	r.products[id] = product
	return &product, nil
}

// ToggleAvailability flips the availability flag of an existing product.
func (r *MockProductRepository) ToggleAvailability(id uint) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	product.Availability = !product.Availability
	r.products[id] = product
	return &product, nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}
