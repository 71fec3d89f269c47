package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
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

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(action string, payload map[string]interface{}) error {
	args := m.Called(action, payload)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: 2, Name: "Monitor Curvo", Price: 399.0, Availability: true},
		{ID: 1, Name: "Teclado", Price: 75.0, Availability: true},
	}

	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &models.Product{ID: 1, Name: "Monitor Curvo", Price: 399.0, Availability: true}

	// Test successful retrieval
	mockRepo.On("GetByID", uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProductByID(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	newProduct := &models.Product{Name: "Monitor Curvo", Price: 399.0}

	mockRepo.On("Create", newProduct).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	// Products always start out available.
	assert.True(t, newProduct.Availability)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductPublishesEvent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	newProduct := &models.Product{Name: "Monitor Curvo", Price: 399.0}

	mockRepo.On("Create", newProduct).Return(nil).Once()
	mockEvents.On("PublishProductEvent", "product.created", mock.Anything).Return(nil).Once()

	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_PublishFailureDoesNotFailOperation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	newProduct := &models.Product{Name: "Monitor Curvo", Price: 399.0}

	mockRepo.On("Create", newProduct).Return(nil).Once()
	mockEvents.On("PublishProductEvent", "product.created", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_ReplaceProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	stored := &models.Product{ID: 1, Name: "Monitor Curvo", Price: 399.0, Availability: true}

	mockRepo.On("GetByID", uint(1)).Return(stored, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 1 && p.Name == "Monitor Plano" && p.Price == 250.0 && !p.Availability
	})).Return(nil).Once()

	product, err := service.ReplaceProduct(1, "Monitor Plano", 250.0, false)
	assert.NoError(t, err)
	assert.Equal(t, "Monitor Plano", product.Name)
	assert.Equal(t, 250.0, product.Price)
	assert.False(t, product.Availability)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ReplaceProductNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrProductNotFound).Once()

	product, err := service.ReplaceProduct(99, "Monitor Plano", 250.0, true)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	// Update is never called once the lookup fails.
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ToggleAvailability(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	stored := &models.Product{ID: 1, Name: "Monitor Curvo", Price: 399.0, Availability: true}

	mockRepo.On("GetByID", uint(1)).Return(stored, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 1 && !p.Availability
	})).Return(nil).Once()

	product, err := service.ToggleAvailability(1)
	assert.NoError(t, err)
	assert.False(t, product.Availability)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ToggleAvailabilityNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrProductNotFound).Once()

	product, err := service.ToggleAvailability(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	stored := &models.Product{ID: 1, Name: "Monitor Curvo", Price: 399.0, Availability: true}

	mockRepo.On("GetByID", uint(1)).Return(stored, nil).Once()
	mockRepo.On("Delete", uint(1)).Return(nil).Once()

	err := service.DeleteProduct(1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProductNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrProductNotFound).Once()

	err := service.DeleteProduct(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
	mockRepo.AssertExpectations(t)
}
