package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Barcode-stock-api/internal/application/dto"
	"github.com/jhoicas/Barcode-stock-api/internal/domain"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/entity"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/repository"
)

// Modos de actualización del ledger.
const (
	ModeAbsolute = "absolute" // fijar stock a un valor objetivo
	ModeRelative = "relative" // sumar/restar una cantidad
)

// StockLedgerUseCase aplica cambios de stock a un producto y registra cada
// cambio como un movimiento inmutable, de forma transaccional con bloqueo de
// fila (SELECT FOR UPDATE) y Commit/Rollback.
type StockLedgerUseCase struct {
	txRunner TxRunner
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(txRunner TxRunner) *StockLedgerUseCase {
	return &StockLedgerUseCase{txRunner: txRunner}
}

// UpdateInput entrada unificada para una actualización de stock.
// ProductID y Barcode son alternativos: basta uno para resolver el producto.
// Mode absolute: NewStock (>= 0) y Kind opcional (default adjustment).
// Mode relative: Quantity (> 0) y Direction in|out.
type UpdateInput struct {
	ProductID string
	Barcode   string
	Mode      string
	NewStock  *int64
	Quantity  *int64
	Direction string
	Kind      string
	Note      string
}

// ApplyAbsolute fija el stock de un producto a un valor objetivo.
// Adapta el request HTTP de /api/stock/set al modo absoluto de Apply.
func (uc *StockLedgerUseCase) ApplyAbsolute(ctx context.Context, in dto.SetStockRequest) (*dto.StockUpdateResult, error) {
	return uc.Apply(ctx, UpdateInput{
		ProductID: in.ProductID,
		Barcode:   in.Barcode,
		Mode:      ModeAbsolute,
		NewStock:  in.NewStock,
		Kind:      in.Kind,
		Note:      in.Note,
	})
}

// ApplyRelative suma o resta una cantidad al stock de un producto.
// Adapta el request HTTP de /api/stock/adjust al modo relativo de Apply.
func (uc *StockLedgerUseCase) ApplyRelative(ctx context.Context, in dto.AdjustStockRequest) (*dto.StockUpdateResult, error) {
	return uc.Apply(ctx, UpdateInput{
		ProductID: in.ProductID,
		Barcode:   in.Barcode,
		Mode:      ModeRelative,
		Quantity:  in.Quantity,
		Direction: in.Direction,
		Note:      in.Note,
	})
}

// Apply valida la entrada, inicia una transacción, bloquea la fila del
// producto, calcula el nuevo stock según el modo y persiste la actualización
// del producto y el movimiento como una unidad (Commit o Rollback).
//
// Contratos:
//   - absoluto: delta = new_stock - stock_before; new_stock >= 0.
//   - relativo in:  stock_after = stock_before + quantity.
//   - relativo out: stock_after = stock_before - quantity; falla con
//     ErrInsufficientStock si quedara negativo (sin mutación ni movimiento).
func (uc *StockLedgerUseCase) Apply(ctx context.Context, input UpdateInput) (*dto.StockUpdateResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var result *dto.StockUpdateResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := lockProduct(productRepo, input)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		before := product.Stock
		var after, delta int64
		kind := input.Kind
		switch input.Mode {
		case ModeAbsolute:
			after = *input.NewStock
			delta = after - before
			if kind == "" {
				kind = entity.MovementKindAdjustment
			}
		case ModeRelative:
			qty := *input.Quantity
			if input.Direction == entity.MovementKindIn {
				after = before + qty
				delta = qty
			} else {
				after = before - qty
				delta = -qty
				if after < 0 {
					return domain.ErrInsufficientStock
				}
			}
			kind = input.Direction
		}

		if err := productRepo.UpdateStock(product.ID, after); err != nil {
			return err
		}
		now := time.Now()
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			Kind:        kind,
			Quantity:    delta,
			StockBefore: before,
			StockAfter:  after,
			Note:        input.Note,
			OccurredAt:  now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		result = &dto.StockUpdateResult{
			ProductID:   product.ID,
			StockBefore: before,
			StockAfter:  after,
			Delta:       delta,
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return result, nil
}

// validate chequea la entrada antes de tocar la BD. Un fallo aquí nunca
// llega a abrir transacción.
func (in UpdateInput) validate() error {
	if in.ProductID == "" && in.Barcode == "" {
		return domain.ErrInvalidInput
	}
	switch in.Mode {
	case ModeAbsolute:
		if in.NewStock == nil || *in.NewStock < 0 {
			return domain.ErrInvalidInput
		}
		if in.Kind != "" && !entity.ValidMovementKind(in.Kind) {
			return domain.ErrInvalidInput
		}
	case ModeRelative:
		if in.Quantity == nil || *in.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		if in.Direction != entity.MovementKindIn && in.Direction != entity.MovementKindOut {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// lockProduct resuelve el producto por ID o barcode y bloquea su fila.
// Ambas referencias llegan al mismo lookup subyacente.
func lockProduct(productRepo repository.ProductRepository, input UpdateInput) (*entity.Product, error) {
	if input.ProductID != "" {
		return productRepo.GetForUpdateByID(input.ProductID)
	}
	return productRepo.GetForUpdateByBarcode(input.Barcode)
}

// classify deja pasar los errores de dominio tal cual y envuelve cualquier
// otro (begin/commit/exec fallido) como ErrPersistence, para que el caller
// pueda distinguirlo sin inspeccionar detalles del driver.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInsufficientStock):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
}
