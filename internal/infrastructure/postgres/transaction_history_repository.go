package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.TransactionHistoryRepository = (*TransactionHistoryRepo)(nil)

// TransactionHistoryRepo implementación de TransactionHistoryRepository sobre
// PostgreSQL. Tabla append-only: solo inserciones y lecturas.
type TransactionHistoryRepo struct {
	q Querier
}

func NewTransactionHistoryRepository(q Querier) *TransactionHistoryRepo {
	return &TransactionHistoryRepo{q: q}
}

// Create inserta una fila de traza (par estado/cantidad antes y después).
func (r *TransactionHistoryRepo) Create(h *entity.TransactionHistory) error {
	query := `
		INSERT INTO transaction_histories (id, transaction_id, state_before, state_after, quantity_before, quantity_after, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.TransactionID, string(h.StateBefore), string(h.StateAfter),
		h.QuantityBefore, h.QuantityAfter, nullable(h.CreatedBy), h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transaction history: %w", err)
	}
	return nil
}

// ListByTransaction lista la traza de la transacción en orden cronológico.
func (r *TransactionHistoryRepo) ListByTransaction(transactionID string, limit, offset int) ([]*entity.TransactionHistory, error) {
	query := `
		SELECT id, transaction_id, state_before, state_after, quantity_before, quantity_after, created_by, created_at
		FROM transaction_histories
		WHERE transaction_id = $1 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, transactionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transaction history: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionHistory
	for rows.Next() {
		var h entity.TransactionHistory
		var stateBefore, stateAfter string
		var createdBy *string
		if err := rows.Scan(&h.ID, &h.TransactionID, &stateBefore, &stateAfter,
			&h.QuantityBefore, &h.QuantityAfter, &createdBy, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction history: %w", err)
		}
		h.StateBefore = entity.TransactionState(stateBefore)
		h.StateAfter = entity.TransactionState(stateAfter)
		if createdBy != nil {
			h.CreatedBy = *createdBy
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
