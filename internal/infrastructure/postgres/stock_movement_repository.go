package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL.
// La tabla stock_movements es append-only: no existe Update ni Delete.
type StockMovementRepo struct {
	q Querier
}

func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, stock_id, quantity_before, quantity_after, cost, reason, serial, receiver_id, created_by, created_at`

// Create inserta un movimiento del ledger.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, stock_id, quantity_before, quantity_after, cost, reason, serial, receiver_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.StockID, m.Before, m.After, m.Cost, m.Reason,
		nullable(m.Serial), nullable(m.ReceiverID), nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID (nil si no existe).
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	return r.scanOne(query, id)
}

// GetLastByStock devuelve el movimiento más reciente del stock (nil si no hay).
func (r *StockMovementRepo) GetLastByStock(stockID string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE stock_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`
	return r.scanOne(query, stockID)
}

// ListByStock lista movimientos del stock, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByStock(stockID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE stock_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, stockID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListSince devuelve los movimientos del stock creados en o después del instante
// dado, del más reciente al más antiguo. Alimenta el rollback recursivo.
func (r *StockMovementRepo) ListSince(stockID string, since time.Time) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE stock_id = $1 AND created_at >= $2 ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query, stockID, since)
	if err != nil {
		return nil, fmt.Errorf("list stock movements since: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func (r *StockMovementRepo) scanOne(query string, args ...any) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var serial, receiverID, createdBy *string
	if err := row.Scan(&m.ID, &m.StockID, &m.Before, &m.After, &m.Cost, &m.Reason,
		&serial, &receiverID, &createdBy, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock movement: %w", err)
	}
	if serial != nil {
		m.Serial = *serial
	}
	if receiverID != nil {
		m.ReceiverID = *receiverID
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}
