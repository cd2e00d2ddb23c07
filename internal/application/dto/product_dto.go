package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products. SKU vacío genera uno
// a partir de CategoryCode.
type CreateProductRequest struct {
	SKU          string          `json:"sku,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CategoryCode string          `json:"category_code,omitempty"`
	Price        decimal.Decimal `json:"price"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CategoryCode string          `json:"category_code,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
