package memory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/application/transaction"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)
var _ transaction.TxRunner = (*TxRunner)(nil)

// TxRunner emula la transacción de BD: toma el mutex del store, saca un
// snapshot y lo repone si fn falla. Los repos que pasa a fn operan sin volver
// a bloquear (inTx).
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con los repos del ledger dentro de la "transacción".
func (r *TxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	before := r.store.snapshot()
	err := fn(
		&StockRecordRepo{base{s: r.store, inTx: true}},
		&StockMovementRepo{base{s: r.store, inTx: true}},
		&ProductRepo{base{s: r.store, inTx: true}},
	)
	if err != nil {
		r.store.restore(before)
		return err
	}
	return nil
}

// RunTransaction ejecuta fn con los cuatro repos de la máquina de estados.
func (r *TxRunner) RunTransaction(_ context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.StockMovementRepository,
	txRepo repository.TransactionRepository,
	histRepo repository.TransactionHistoryRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	before := r.store.snapshot()
	err := fn(
		&StockRecordRepo{base{s: r.store, inTx: true}},
		&StockMovementRepo{base{s: r.store, inTx: true}},
		&TransactionRepo{base{s: r.store, inTx: true}},
		&TransactionHistoryRepo{base{s: r.store, inTx: true}},
	)
	if err != nil {
		r.store.restore(before)
		return err
	}
	return nil
}
