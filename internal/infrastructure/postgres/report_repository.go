package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el dashboard.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// CountProducts devuelve el total de productos.
func (r *ReportRepo) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products`)
}

// CountLowStock cuenta productos en o por debajo de su umbral mínimo.
// min_stock = 0 significa "sin umbral" y no cuenta como stock bajo.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE stock <= min_stock AND min_stock > 0`)
}

// TotalStockValue devuelve SUM(stock * unit_price) sobre todos los productos.
func (r *ReportRepo) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(stock * unit_price), 0) FROM products`,
	).Scan(&value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total stock value: %w", err)
	}
	return value, nil
}

// CountCategories devuelve el total de categorías.
func (r *ReportRepo) CountCategories(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM categories`)
}

func (r *ReportRepo) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
