package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, stock_id, name, state, quantity, created_by, created_at, updated_at`

// Create inserta una transacción de inventario recién abierta.
func (r *TransactionRepo) Create(t *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, stock_id, name, state, quantity, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, nullable(t.StockID), t.Name, string(t.State), t.Quantity,
		nullable(t.CreatedBy), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID (nil si no existe).
func (r *TransactionRepo) GetByID(id string) (*entity.InventoryTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM inventory_transactions WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene la transacción bloqueando la fila. Serializa dos
// operaciones concurrentes sobre la misma transacción dentro de la tx de BD.
func (r *TransactionRepo) GetByIDForUpdate(id string) (*entity.InventoryTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM inventory_transactions WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Update persiste estado, cantidad y updated_at de la transacción.
func (r *TransactionRepo) Update(t *entity.InventoryTransaction) error {
	query := `
		UPDATE inventory_transactions
		SET state = $2, quantity = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, string(t.State), t.Quantity, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory transaction: %w", err)
	}
	return nil
}

// ListByStock lista transacciones asociadas a un stock, de la más reciente a la más antigua.
func (r *TransactionRepo) ListByStock(stockID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM inventory_transactions
		WHERE stock_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, stockID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TransactionRepo) scanOne(query string, args ...any) (*entity.InventoryTransaction, error) {
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func scanTransaction(row pgx.Row) (*entity.InventoryTransaction, error) {
	var t entity.InventoryTransaction
	var stockID, createdBy *string
	var state string
	if err := row.Scan(&t.ID, &stockID, &t.Name, &state, &t.Quantity,
		&createdBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan inventory transaction: %w", err)
	}
	t.State = entity.TransactionState(state)
	if stockID != nil {
		t.StockID = *stockID
	}
	if createdBy != nil {
		t.CreatedBy = *createdBy
	}
	return &t, nil
}
