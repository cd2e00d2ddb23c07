package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// MovementForPDF línea del reporte de movimientos (kardex) lista para render.
type MovementForPDF struct {
	Date   time.Time
	Reason string
	Before decimal.Decimal
	After  decimal.Decimal
	Delta  decimal.Decimal
	Cost   decimal.Decimal
}

// MovementPDFGenerator puerto de generación del PDF del kardex de un stock.
type MovementPDFGenerator interface {
	GenerateMovementPDF(
		ctx context.Context,
		stock *entity.StockRecord,
		product *entity.Product,
		warehouse *entity.Warehouse,
		movements []MovementForPDF,
	) ([]byte, error)
}

// ReportUseCase arma el reporte de movimientos de un stock y lo exporta a PDF.
type ReportUseCase struct {
	stockRepo     repository.StockRecordRepository
	movRepo       repository.StockMovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	generator     MovementPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	stockRepo repository.StockRecordRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	generator MovementPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		stockRepo:     stockRepo,
		movRepo:       movRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		generator:     generator,
	}
}

// maxReportMovements tope de líneas del reporte (una página A4 aguanta ~40,
// maroto pagina el resto).
const maxReportMovements = 500

// MovementReport genera el PDF del kardex del stock indicado.
func (uc *ReportUseCase) MovementReport(ctx context.Context, stockID string) ([]byte, error) {
	stock, err := uc.stockRepo.GetByID(stockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrStockNotFound
	}
	product, err := uc.productRepo.GetByID(stock.ProductID)
	if err != nil {
		return nil, err
	}
	warehouse, err := uc.warehouseRepo.GetByID(stock.WarehouseID)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.ListByStock(stockID, maxReportMovements, 0)
	if err != nil {
		return nil, err
	}

	lines := make([]MovementForPDF, 0, len(movements))
	// ListByStock devuelve del más reciente al más antiguo; el kardex se lee
	// en orden cronológico.
	for i := len(movements) - 1; i >= 0; i-- {
		m := movements[i]
		lines = append(lines, MovementForPDF{
			Date:   m.CreatedAt,
			Reason: m.Reason,
			Before: m.Before,
			After:  m.After,
			Delta:  m.Delta(),
			Cost:   m.Cost,
		})
	}
	return uc.generator.GenerateMovementPDF(ctx, stock, product, warehouse, lines)
}
