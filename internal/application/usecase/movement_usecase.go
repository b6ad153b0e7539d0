package usecase

import (
	"github.com/jhoicas/Barcode-stock-api/internal/application/dto"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/repository"
)

// MovementUseCase lecturas del ledger de movimientos. El ledger es
// append-only: no existe ninguna operación de edición ni borrado.
type MovementUseCase struct {
	repo repository.StockMovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.StockMovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo}
}

// List lista los movimientos más recientes de todos los productos.
func (uc *MovementUseCase) List(limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(list, limit, offset), nil
}

// ListByProduct lista los movimientos de un producto, más reciente primero.
func (uc *MovementUseCase) ListByProduct(productID string, limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.repo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(list, limit, offset), nil
}

func toMovementList(list []repository.MovementWithProduct, limit, offset int) *dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(list))
	for _, mp := range list {
		m := mp.Movement
		items = append(items, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			ProductName: mp.ProductName,
			Barcode:     mp.Barcode,
			Kind:        m.Kind,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Note:        m.Note,
			OccurredAt:  m.OccurredAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}
}
