package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Brand         string          `json:"brand,omitempty"`
	Model         string          `json:"model,omitempty"`
	Type          string          `json:"type"`
	SerialNumber  string          `json:"serial_number,omitempty"`
	Status        string          `json:"status,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name          string          `json:"name"`
	Brand         string          `json:"brand,omitempty"`
	Model         string          `json:"model,omitempty"`
	SerialNumber  string          `json:"serial_number,omitempty"`
	Status        string          `json:"status,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand,omitempty"`
	Model         string          `json:"model,omitempty"`
	ItemKind      string          `json:"item_kind"`
	Type          string          `json:"type"`
	SerialNumber  string          `json:"serial_number,omitempty"`
	Status        string          `json:"status,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ListProductsResponse catálogo paginado.
type ListProductsResponse struct {
	Items      []ProductResponse `json:"items"`
	Pagination PageResponse      `json:"pagination"`
}
