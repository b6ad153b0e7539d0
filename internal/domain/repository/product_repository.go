package repository

import "github.com/jhoicas/Barcode-stock-api/internal/domain/entity"

// ProductWithCategory producto con el nombre de su categoría resuelto (JOIN).
type ProductWithCategory struct {
	Product      entity.Product
	CategoryName string // vacío si no tiene categoría
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Stock solo se modifica vía UpdateStock, dentro de una transacción del ledger.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	// GetForUpdateByID bloquea la fila del producto (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdateByID(id string) (*entity.Product, error)
	GetForUpdateByBarcode(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija las existencias y refresca updated_at.
	UpdateStock(productID string, stock int64) error
	List(search string, limit, offset int) ([]ProductWithCategory, error)
	Delete(id string) error
}
