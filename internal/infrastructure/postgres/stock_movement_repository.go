package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Barcode-stock-api/internal/domain/entity"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// El ledger es append-only: solo INSERT y SELECT, nunca UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, kind, quantity, stock_before, stock_after, note, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Kind, movement.Quantity,
		movement.StockBefore, movement.StockAfter, movement.Note, movement.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

const movementSelect = `
	SELECT m.id, m.product_id, m.kind, m.quantity, m.stock_before, m.stock_after, m.note, m.occurred_at,
	       p.name AS product_name, p.barcode
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id`

// List lista movimientos de todos los productos, más reciente primero.
func (r *StockMovementRepo) List(limit, offset int) ([]repository.MovementWithProduct, error) {
	query := movementSelect + ` ORDER BY m.occurred_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByProduct lista movimientos de un producto, más reciente primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]repository.MovementWithProduct, error) {
	query := movementSelect + ` WHERE m.product_id = $1 ORDER BY m.occurred_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

func (r *StockMovementRepo) list(query string, args ...any) ([]repository.MovementWithProduct, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementWithProduct
	for rows.Next() {
		var mp repository.MovementWithProduct
		m := &mp.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity,
			&m.StockBefore, &m.StockAfter, &m.Note, &m.OccurredAt,
			&mp.ProductName, &mp.Barcode); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, mp)
	}
	return list, rows.Err()
}
