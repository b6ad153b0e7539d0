package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Barcode-stock-api/internal/domain"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/entity"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, barcode, name, category_id, stock, min_stock, unit_price, description, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Barcode duplicado -> ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, barcode, name, category_id, stock, min_stock, unit_price, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.Name, product.CategoryID,
		product.Stock, product.MinStock, product.UnitPrice, product.Description,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByBarcode obtiene un producto por código de barras (lookup de escaneo).
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// GetForUpdateByID obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción del TxRunner.
func (r *ProductRepo) GetForUpdateByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// GetForUpdateByBarcode obtiene el producto por barcode y bloquea su fila.
func (r *ProductRepo) GetForUpdateByBarcode(barcode string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE barcode = $1 FOR UPDATE`, barcode)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Barcode, &p.Name, &p.CategoryID, &p.Stock, &p.MinStock,
		&p.UnitPrice, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos editables del producto. Stock no se toca aquí;
// UpdateStock es el único camino para las existencias.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET barcode = $2, name = $3, category_id = $4, min_stock = $5, unit_price = $6, description = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.Name, product.CategoryID,
		product.MinStock, product.UnitPrice, product.Description, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija las existencias y refresca updated_at (usado por el ledger).
func (r *ProductRepo) UpdateStock(productID string, stock int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		productID, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lista productos con el nombre de su categoría, paginado. search (ya
// normalizado, sin acentos) filtra por nombre o barcode.
func (r *ProductRepo) List(search string, limit, offset int) ([]repository.ProductWithCategory, error) {
	query := `
		SELECT p.id, p.barcode, p.name, p.category_id, p.stock, p.min_stock, p.unit_price, p.description, p.created_at, p.updated_at,
		       COALESCE(c.name, '') AS category_name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id`
	args := []any{}
	if search != "" {
		query += ` WHERE unaccent(lower(p.name)) LIKE '%' || $1 || '%' OR p.barcode LIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += fmt.Sprintf(` ORDER BY p.name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductWithCategory
	for rows.Next() {
		var pc repository.ProductWithCategory
		p := &pc.Product
		if err := rows.Scan(&p.ID, &p.Barcode, &p.Name, &p.CategoryID, &p.Stock, &p.MinStock,
			&p.UnitPrice, &p.Description, &p.CreatedAt, &p.UpdatedAt, &pc.CategoryName); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, pc)
	}
	return list, rows.Err()
}

// Delete elimina un producto. ErrNotFound si no existe.
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
