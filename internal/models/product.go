package models

import "time"

// Product represents a product in the catalog.
// IDs are assigned by the storage layer on creation and never reused.
type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null" validate:"required"`
	Price        float64   `json:"price" gorm:"not null" validate:"required,gt=0"`
	Availability bool      `json:"availability" gorm:"default:true"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
