// Package reports contiene los casos de uso de reportes agregados del
// inventario (dashboard).
package reports

import (
	"context"

	"github.com/jhoicas/Barcode-stock-api/internal/application/dto"
	"github.com/jhoicas/Barcode-stock-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardUseCase genera el resumen agregado del inventario.
//
// Fuente de datos: ReportRepository (consultas read-only). No accede
// directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo:
//  1. CountProducts    → TotalProducts
//  2. CountLowStock    → LowStockCount (stock <= min_stock, min_stock > 0)
//  3. TotalStockValue  → TotalStockValue (SUM(stock * unit_price))
//  4. CountCategories  → CategoryCount
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countResult struct {
		n   int64
		err error
	}
	type valueResult struct {
		v   decimal.Decimal
		err error
	}

	productsCh := make(chan countResult, 1)
	lowStockCh := make(chan countResult, 1)
	valueCh := make(chan valueResult, 1)
	categoriesCh := make(chan countResult, 1)

	go func() {
		n, err := uc.reportRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountLowStock(ctx)
		lowStockCh <- countResult{n, err}
	}()
	go func() {
		v, err := uc.reportRepo.TotalStockValue(ctx)
		valueCh <- valueResult{v, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountCategories(ctx)
		categoriesCh <- countResult{n, err}
	}()

	products := <-productsCh
	lowStock := <-lowStockCh
	value := <-valueCh
	categories := <-categoriesCh

	for _, err := range []error{products.err, lowStock.err, value.err, categories.err} {
		if err != nil {
			return nil, err
		}
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:   products.n,
		LowStockCount:   lowStock.n,
		TotalStockValue: value.v,
		CategoryCount:   categories.n,
	}, nil
}
