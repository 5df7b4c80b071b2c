package repositories

import (
	"errors"
	"fmt"

	"github.com/IleanaLopez91/dashboardPERN/internal/models"

	"gorm.io/gorm"
)

// listLimit caps the number of rows returned by the list projection.
const listLimit = 2

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves the product summaries ordered by price descending.
// The projection is applied at the query level so the id and timestamp
// columns never leave the database.
func (r *GORMProductRepository) GetAll() ([]models.ProductSummary, error) {
	summaries := make([]models.ProductSummary, 0, listLimit)
	err := r.db.Model(&models.Product{}).
		Select("name", "price", "availability").
		Order("price DESC").
		Limit(listLimit).
		Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return summaries, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product row. The database assigns the id.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of the product with the given id
// in a single conditional UPDATE. The affected-rows count decides
// existence, so there is no window for a concurrent delete between a
// lookup and the write.
func (r *GORMProductRepository) Update(id uint, name string, price float64, availability bool) (*models.Product, error) {
	var product models.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).Where("id = ?", id).Updates(map[string]any{
			"name":         name,
			"price":        price,
			"availability": availability,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update product %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return tx.First(&product, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ToggleAvailability flips the availability flag with a single
// conditional UPDATE and returns the updated row.
func (r *GORMProductRepository) ToggleAvailability(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ?", id).
			Update("availability", gorm.Expr("NOT availability"))
		if res.Error != nil {
			return fmt.Errorf("failed to toggle availability for product %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return tx.First(&product, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete permanently removes the product row with the given id.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
