package dto

import "time"

// SetStockRequest body para POST /api/stock/set (modo absoluto).
// ProductID y Barcode son alternativos; basta uno para resolver el producto.
type SetStockRequest struct {
	ProductID string `json:"product_id,omitempty"`
	Barcode   string `json:"barcode,omitempty"`
	NewStock  *int64 `json:"new_stock"`
	Kind      string `json:"kind,omitempty"` // default: adjustment
	Note      string `json:"note,omitempty"`
}

// AdjustStockRequest body para POST /api/stock/adjust (modo relativo).
type AdjustStockRequest struct {
	ProductID string `json:"product_id,omitempty"`
	Barcode   string `json:"barcode,omitempty"`
	Quantity  *int64 `json:"quantity"`
	Direction string `json:"direction"` // in | out
	Note      string `json:"note,omitempty"`
}

// StockUpdateResult resultado de una actualización de stock.
type StockUpdateResult struct {
	ProductID   string `json:"product_id"`
	StockBefore int64  `json:"stock_before"`
	StockAfter  int64  `json:"stock_after"`
	Delta       int64  `json:"delta"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Barcode     string    `json:"barcode"`
	Kind        string    `json:"kind"`
	Quantity    int64     `json:"quantity"`
	StockBefore int64     `json:"stock_before"`
	StockAfter  int64     `json:"stock_after"`
	Note        string    `json:"note,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// MovementListResponse lista de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
