package repository

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// StockRecordRepository puerto de persistencia para registros de stock.
// GetByIDForUpdate se usa dentro de transacciones de BD para serializar
// escritores concurrentes sobre la misma fila (SELECT FOR UPDATE).
type StockRecordRepository interface {
	Create(stock *entity.StockRecord) error
	GetByID(id string) (*entity.StockRecord, error)
	GetByIDForUpdate(id string) (*entity.StockRecord, error)
	GetByProductAndWarehouse(productID, warehouseID string) (*entity.StockRecord, error)
	Update(stock *entity.StockRecord) error
	List(limit, offset int) ([]*entity.StockRecord, error)
}
