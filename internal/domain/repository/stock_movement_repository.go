package repository

import "github.com/jhoicas/Barcode-stock-api/internal/domain/entity"

// MovementWithProduct movimiento con nombre y barcode del producto (JOIN).
type MovementWithProduct struct {
	Movement    entity.StockMovement
	ProductName string
	Barcode     string
}

// StockMovementRepository define el puerto de persistencia para movimientos
// de stock (DIP). El ledger es append-only: solo Create y lecturas.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// List lista movimientos de todos los productos, más reciente primero.
	List(limit, offset int) ([]MovementWithProduct, error)
	// ListByProduct lista movimientos de un producto, más reciente primero.
	ListByProduct(productID string, limit, offset int) ([]MovementWithProduct, error)
}
