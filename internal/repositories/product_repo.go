package repositories

import (
	"errors"

	"tienda/internal/models"
)

// ErrProductNotFound is returned when a lookup, update or delete targets an
// ID with no matching row. Handlers branch on it to produce a 404 instead
// of a 500.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product ordered by price, highest first.
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
