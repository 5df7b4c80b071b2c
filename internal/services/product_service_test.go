package services_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/IleanaLopez91/dashboardPERN/internal/models"
	"github.com/IleanaLopez91/dashboardPERN/internal/repositories"
	"github.com/IleanaLopez91/dashboardPERN/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.ProductSummary, error) {
	args := m.Called()
	return args.Get(0).([]models.ProductSummary), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(id uint, name string, price float64, availability bool) (*models.Product, error) {
	args := m.Called(id, name, price, availability)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) ToggleAvailability(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher records published product events.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := []models.ProductSummary{
		{Name: "Product A", Price: 20.0, Availability: true},
		{Name: "Product B", Price: 10.0, Availability: false},
	}

	mockRepo.On("GetAll").Return(expected, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Availability: true}

	mockRepo.On("GetByID", uint(1)).Return(expected, nil).Once()
	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProductByID(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	newProduct := &models.Product{Name: "New Product", Price: 50.0, Availability: true}

	mockRepo.On("Create", newProduct).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)

	mockRepo.On("Create", newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductGuard(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	// An invariant-breaking product never reaches the repository.
	err := service.CreateProduct(&models.Product{Name: "", Price: -1})
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_CreateProductPublishesEvent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	newProduct := &models.Product{Name: "New Product", Price: 50.0, Availability: true}

	mockRepo.On("Create", newProduct).Return(nil).Once()
	mockEvents.On("Publish", "product.created", mock.MatchedBy(func(body []byte) bool {
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			return false
		}
		return payload["name"] == "New Product"
	})).Return(nil).Once()

	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_CreateProductPublishFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	newProduct := &models.Product{Name: "New Product", Price: 50.0, Availability: true}

	mockRepo.On("Create", newProduct).Return(nil).Once()
	mockEvents.On("Publish", "product.created", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	// The row is committed; a broker failure must not fail the request.
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockEvents.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	updated := &models.Product{ID: 1, Name: "Updated", Price: 12.0, Availability: false}

	mockRepo.On("Update", uint(1), "Updated", 12.0, false).Return(updated, nil).Once()
	product, err := service.UpdateProduct(1, "Updated", 12.0, false)
	assert.NoError(t, err)
	assert.Equal(t, updated, product)

	mockRepo.On("Update", uint(99), "Updated", 12.0, false).Return(nil, repositories.ErrProductNotFound).Once()
	_, err = service.UpdateProduct(99, "Updated", 12.0, false)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ToggleAvailability(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	toggled := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Availability: false}

	mockRepo.On("ToggleAvailability", uint(1)).Return(toggled, nil).Once()
	product, err := service.ToggleAvailability(1)
	assert.NoError(t, err)
	assert.False(t, product.Availability)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	mockRepo.On("Delete", uint(1)).Return(nil).Once()
	mockEvents.On("Publish", "product.deleted", mock.Anything).Return(nil).Once()

	err := service.DeleteProduct(1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)

	// No event when the delete failed.
	mockRepo.On("Delete", uint(99)).Return(repositories.ErrProductNotFound).Once()
	err = service.DeleteProduct(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockEvents.AssertNumberOfCalls(t, "Publish", 1)
}
