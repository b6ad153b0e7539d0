package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReportRepository consultas de solo lectura para el dashboard.
type ReportRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	// CountLowStock cuenta productos con stock <= min_stock (min_stock > 0).
	CountLowStock(ctx context.Context) (int64, error)
	// TotalStockValue devuelve SUM(stock * unit_price) sobre todos los productos.
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
	CountCategories(ctx context.Context) (int64, error)
}
