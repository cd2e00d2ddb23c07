package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación de StockRecordRepository sobre PostgreSQL
// (usable con pool o tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

const stockColumns = `id, product_id, warehouse_id, quantity, created_by, created_at, updated_at`

// Create inserta un registro de stock. El par (product_id, warehouse_id) tiene
// constraint único; su violación se traduce a ErrStockAlreadyExists.
func (r *StockRecordRepo) Create(stock *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (id, product_id, warehouse_id, quantity, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	createdBy := nullable(stock.CreatedBy)
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.ProductID, stock.WarehouseID, stock.Quantity,
		createdBy, stock.CreatedAt, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrStockAlreadyExists
		}
		return fmt.Errorf("create stock record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de stock por ID (nil si no existe).
func (r *StockRecordRepo) GetByID(id string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE)
// para serializar escritores concurrentes dentro de la tx.
func (r *StockRecordRepo) GetByIDForUpdate(id string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// GetByProductAndWarehouse obtiene el stock de un producto en una bodega (nil si no existe).
func (r *StockRecordRepo) GetByProductAndWarehouse(productID, warehouseID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(query, productID, warehouseID)
}

// Update persiste cantidad, bodega y updated_at del registro.
func (r *StockRecordRepo) Update(stock *entity.StockRecord) error {
	query := `
		UPDATE stock_records
		SET quantity = $2, warehouse_id = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.Quantity, stock.WarehouseID, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrStockAlreadyExists
		}
		return fmt.Errorf("update stock record: %w", err)
	}
	return nil
}

// List lista registros de stock con paginación.
func (r *StockRecordRepo) List(limit, offset int) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *StockRecordRepo) scanOne(query string, args ...any) (*entity.StockRecord, error) {
	s, err := scanStock(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func scanStock(row pgx.Row) (*entity.StockRecord, error) {
	var s entity.StockRecord
	var createdBy *string
	if err := row.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.Quantity,
		&createdBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock record: %w", err)
	}
	if createdBy != nil {
		s.CreatedBy = *createdBy
	}
	return &s, nil
}

// nullable convierte cadena vacía a NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
