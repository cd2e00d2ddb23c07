package transaction

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// promoteIfCoversAll decide si una operación parcial cubre la cantidad completa
// de la transacción y, de ser así, ejecuta la variante total. El estado se
// vuelve a validar dentro de la variante elegida, bajo el bloqueo de fila.
func (uc *TransactionUseCase) promoteIfCoversAll(
	_ context.Context,
	_, transactionID string,
	qty decimal.Decimal,
	full func() (*entity.InventoryTransaction, error),
) (bool, *entity.InventoryTransaction, error) {
	trans, err := uc.txRepo.GetByID(transactionID)
	if err != nil {
		return false, nil, err
	}
	if trans == nil {
		return false, nil, domain.ErrNotFound
	}
	if qty.GreaterThanOrEqual(trans.Quantity) && trans.Quantity.GreaterThan(decimal.Zero) {
		result, err := full()
		return true, result, err
	}
	return false, nil, nil
}

// partial ejecuta una variante parcial: devuelve qty al stock (si corresponde),
// reduce la cantidad de la transacción, pasa por el estado parcial y vuelve al
// estado previo. Ambos saves generan su fila de historial dentro de la misma tx.
func (uc *TransactionUseCase) partial(
	ctx context.Context,
	actor, transactionID string,
	op inventory.Operation,
	qty decimal.Decimal,
	reason string,
	cost decimal.Decimal,
	putStock bool,
) (*entity.InventoryTransaction, error) {
	return uc.withTransaction(ctx, actor, transactionID, op, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, op); err != nil {
			return err
		}
		if qty.IsNegative() {
			return &domain.InvalidQuantityError{Quantity: qty}
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		if putStock {
			if err := oc.put(qty, reasonFor(op, reason, oc.trans, qty), cost, uc.flags.AllowDuplicateMovements); err != nil {
				return err
			}
		}
		if err := oc.trans.SetQuantity(prevQty.Sub(qty)); err != nil {
			return err
		}
		if err := oc.trans.SetState(inventory.TargetState(op)); err != nil {
			return err
		}
		if err := oc.save(prevState, prevQty); err != nil {
			return err
		}
		// La variante parcial regresa al estado previo conservando la cantidad reducida.
		midState, midQty := oc.trans.State, oc.trans.Quantity
		if err := oc.trans.SetState(prevState); err != nil {
			return err
		}
		return oc.save(midState, midQty)
	})
}
