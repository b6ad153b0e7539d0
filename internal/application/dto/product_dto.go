package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock > 0
// genera un movimiento sintético de entrada junto con el alta.
type CreateProductRequest struct {
	Barcode      string          `json:"barcode"`
	Name         string          `json:"name"`
	CategoryID   *string         `json:"category_id,omitempty"`
	InitialStock int64           `json:"initial_stock"`
	MinStock     int64           `json:"min_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Description  string          `json:"description"`
}

// UpdateProductRequest entrada para actualizar un producto. Stock no se
// edita por aquí; solo vía el ledger de movimientos.
type UpdateProductRequest struct {
	Barcode     *string          `json:"barcode"`
	Name        *string          `json:"name"`
	CategoryID  *string          `json:"category_id"`
	MinStock    *int64           `json:"min_stock"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Description *string          `json:"description"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Barcode      string          `json:"barcode"`
	Name         string          `json:"name"`
	CategoryID   *string         `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Stock        int64           `json:"stock"`
	MinStock     int64           `json:"min_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
