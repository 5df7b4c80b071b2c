package services

import (
	"encoding/json"
	"log"

	"github.com/IleanaLopez91/dashboardPERN/internal/models"
	"github.com/IleanaLopez91/dashboardPERN/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// EventPublisher publishes product lifecycle events to a message
// broker. A nil publisher disables events.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:     repo,
		events:   events,
		validate: validator.New(),
	}
}

// GetAllProducts retrieves the product list projection.
func (s *ProductService) GetAllProducts() ([]models.ProductSummary, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct persists a new product and publishes a product.created
// event. The struct-tag guard is a last line of defense; request-level
// validation has already run by the time this is called.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return err
	}
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publishEvent("product.created", product)
	return nil
}

// UpdateProduct overwrites the mutable fields of an existing product.
func (s *ProductService) UpdateProduct(id uint, name string, price float64, availability bool) (*models.Product, error) {
	return s.repo.Update(id, name, price, availability)
}

// ToggleAvailability flips the availability flag of an existing product.
func (s *ProductService) ToggleAvailability(id uint) (*models.Product, error) {
	return s.repo.ToggleAvailability(id)
}

// DeleteProduct permanently removes a product and publishes a
// product.deleted event.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishEvent("product.deleted", &models.Product{ID: id})
	return nil
}

// publishEvent sends a product lifecycle event when a publisher is
// configured. Publish failures are logged and never fail the request:
// the row is already committed.
func (s *ProductService) publishEvent(routingKey string, product *models.Product) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]any{
		"id":           product.ID,
		"name":         product.Name,
		"price":        product.Price,
		"availability": product.Availability,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for product %d: %v", routingKey, product.ID, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for product %d: %v", routingKey, product.ID, err)
	}
}
