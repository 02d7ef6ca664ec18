// Package product is the typed client for the product entity: remote CRUD
// through the envelope API, reads served through the entity cache.
package product

import (
	"time"
)

// Product is the remote entity.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Active      bool      `json:"active"`
}

// CreateProduct are the inputs for a new product.
type CreateProduct struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// UpdateProduct is a partial update; nil fields are left unchanged.
type UpdateProduct struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
}
