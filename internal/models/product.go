package models

import "time"

// Product represents a product row in the store.
//
// There is no soft-delete column: deleting a product removes the row
// permanently. The ID is assigned by the database and never reused.
type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey" validate:"omitempty"`
	Name         string    `json:"name" gorm:"not null" validate:"required"`
	Price        float64   `json:"price" gorm:"not null" validate:"required,gt=0"`
	Availability bool      `json:"availability" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProductSummary is the projection returned by the list endpoint.
// It deliberately omits the id and timestamp bookkeeping columns.
type ProductSummary struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Availability bool    `json:"availability"`
}
