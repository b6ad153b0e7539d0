package usecase

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Barcode-stock-api/internal/application/dto"
	"github.com/jhoicas/Barcode-stock-api/internal/application/ledger"
	"github.com/jhoicas/Barcode-stock-api/internal/domain"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/entity"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock se maneja vía el
// ledger de movimientos; aquí solo se fija el stock inicial en el alta.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	txRunner     ledger.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	txRunner ledger.TxRunner,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, txRunner: txRunner}
}

// Create crea un producto. Si InitialStock > 0 registra además un movimiento
// sintético de entrada, en la misma transacción que el alta.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Barcode == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock < 0 || in.MinStock < 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != nil && *in.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
	} else {
		in.CategoryID = nil
	}

	existing, _ := uc.repo.GetByBarcode(in.Barcode)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Barcode:     in.Barcode,
		Name:        in.Name,
		CategoryID:  in.CategoryID,
		Stock:       in.InitialStock,
		MinStock:    in.MinStock,
		UnitPrice:   in.UnitPrice,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.InitialStock > 0 {
			// Asiento inicial del ledger: 0 -> InitialStock
			mov := &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductID:   product.ID,
				Kind:        entity.MovementKindIn,
				Quantity:    in.InitialStock,
				StockBefore: 0,
				StockAfter:  in.InitialStock,
				Note:        "stock inicial",
				OccurredAt:  now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, ""), nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product, ""), nil
}

// GetByBarcode obtiene un producto por código de barras (lookup de escaneo).
func (uc *ProductUseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product, ""), nil
}

// Update actualiza campos editables del producto. Stock no se toca aquí.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Barcode != nil {
		if *in.Barcode == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Barcode = *in.Barcode
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.CategoryID != nil {
		if *in.CategoryID == "" {
			product.CategoryID = nil
		} else {
			cat, err := uc.categoryRepo.GetByID(*in.CategoryID)
			if err != nil {
				return nil, err
			}
			if cat == nil {
				return nil, domain.ErrNotFound
			}
			product.CategoryID = in.CategoryID
		}
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, ""), nil
}

// Delete elimina un producto. ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// List lista productos con paginación y búsqueda opcional por nombre o
// barcode. El término se normaliza sin acentos para comparar con ILIKE.
func (uc *ProductUseCase) List(search string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(normalizeSearch(search), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, pc := range list {
		items = append(items, *toProductResponse(&pc.Product, pc.CategoryName))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// normalizeSearch quita marcas diacríticas y pasa a minúsculas, para que
// "categoría" y "categoria" encuentren lo mismo.
func normalizeSearch(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

func toProductResponse(p *entity.Product, categoryName string) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Barcode:      p.Barcode,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		CategoryName: categoryName,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		UnitPrice:    p.UnitPrice,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
