package repository

import "github.com/jhoicas/Barcode-stock-api/internal/domain/entity"

// CategoryWithCount categoría con el número de productos que la referencian.
type CategoryWithCount struct {
	Category     entity.Category
	ProductCount int64
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	List() ([]CategoryWithCount, error)
	Update(category *entity.Category) error
	Delete(id string) error
	// CountProducts cuenta los productos que referencian la categoría
	// (guard para el borrado).
	CountProducts(categoryID string) (int64, error)
}
