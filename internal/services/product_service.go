package services

import (
	"log"

	"tienda/internal/models"
	"tienda/internal/repositories"
)

// EventPublisher publishes product change events to the message broker.
// Implemented by pkg/rabbitmq.Client.
type EventPublisher interface {
	PublishProductEvent(action string, payload map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService. The publisher may be nil,
// in which case change events are skipped.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// GetAllProducts retrieves all products, ordered by price descending.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product. Products start out available.
func (s *ProductService) CreateProduct(product *models.Product) error {
	product.Availability = true
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publish("product.created", product)
	return nil
}

// ReplaceProduct overwrites every mutable field of an existing product.
// Returns ErrProductNotFound when the ID has no matching row.
func (s *ProductService) ReplaceProduct(id uint, name string, price float64, availability bool) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.Name = name
	product.Price = price
	product.Availability = availability
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish("product.updated", product)
	return product, nil
}

// ToggleAvailability flips the availability flag of an existing product.
func (s *ProductService) ToggleAvailability(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.Availability = !product.Availability
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish("product.updated", product)
	return product, nil
}

// DeleteProduct removes a product by its ID. The lookup happens first so a
// missing row surfaces as ErrProductNotFound rather than a silent no-op.
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(product.ID); err != nil {
		return err
	}
	s.publish("product.deleted", product)
	return nil
}

// publish sends a change event best-effort: a broker failure is logged and
// never fails the request.
func (s *ProductService) publish(action string, product *models.Product) {
	if s.events == nil {
		return
	}
	payload := map[string]interface{}{
		"id":           product.ID,
		"name":         product.Name,
		"price":        product.Price,
		"availability": product.Availability,
	}
	if err := s.events.PublishProductEvent(action, payload); err != nil {
		log.Printf("Failed to publish %s event for product %d: %v", action, product.ID, err)
	}
}
