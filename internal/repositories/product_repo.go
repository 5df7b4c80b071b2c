package repositories

import (
	"errors"

	"github.com/IleanaLopez91/dashboardPERN/internal/models"
)

// ErrProductNotFound is returned by every repository operation that
// addresses a product id with no matching row. Handlers check for it
// with errors.Is to map the failure to a 404.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
//
// Update, ToggleAvailability and Delete are conditional single-row
// writes: implementations must decide existence and mutate in one
// store-level step so a concurrent delete cannot slip between a lookup
// and the write.
type ProductRepository interface {
	// GetAll returns at most two products ordered by price descending,
	// projected down to the summary fields.
	GetAll() ([]models.ProductSummary, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(id uint, name string, price float64, availability bool) (*models.Product, error)
	// ToggleAvailability flips the availability flag and returns the
	// updated row.
	ToggleAvailability(id uint) (*models.Product, error)
	Delete(id uint) error
}
