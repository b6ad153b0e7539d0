package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen agregado del inventario.
type DashboardSummaryDTO struct {
	TotalProducts   int64           `json:"total_products"`
	LowStockCount   int64           `json:"low_stock_count"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	CategoryCount   int64           `json:"category_count"`
}
