package transaction

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// Operaciones de comercio: checkout, venta, devolución, reserva y back-order.

// Checkout toma stock para iniciar un checkout. Desde "reserved" no vuelve a
// tomar stock (ya se tomó al reservar) y conserva la cantidad reservada.
func (uc *TransactionUseCase) Checkout(ctx context.Context, actor, transactionID string, qty decimal.Decimal, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpCheckout, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpCheckout); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		fromReserved := oc.trans.State == entity.StateCommerceReserved
		if !fromReserved {
			if err := oc.trans.SetQuantity(qty); err != nil {
				return err
			}
			if err := oc.take(qty, reasonFor(inventory.OpCheckout, reason, oc.trans, qty), cost, uc.flags.AllowDuplicateMovements); err != nil {
				return err
			}
		}
		if err := oc.trans.SetState(entity.StateCommerceCheckout); err != nil {
			return err
		}
		return oc.save(prevState, prevQty)
	})
}

// Sold marca la transacción como vendida. Con cantidad explícita equivale a
// SoldAmount (venta directa desde "opened"); sin cantidad solo cambia el
// estado, porque el stock ya se tomó en el checkout/reserva previos.
func (uc *TransactionUseCase) Sold(ctx context.Context, actor, transactionID string, qty *decimal.Decimal, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	if qty != nil {
		return uc.SoldAmount(ctx, actor, transactionID, *qty, reason, cost)
	}
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpSold, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpSold); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		if err := oc.trans.SetState(entity.StateCommerceSold); err != nil {
			return err
		}
		return oc.save(prevState, prevQty)
	})
}

// SoldAmount vende una cantidad directamente desde "opened", tomando el stock.
func (uc *TransactionUseCase) SoldAmount(ctx context.Context, actor, transactionID string, qty decimal.Decimal, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpSoldAmount, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpSoldAmount); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		if err := oc.trans.SetQuantity(qty); err != nil {
			return err
		}
		if err := oc.take(qty, reasonFor(inventory.OpSoldAmount, reason, oc.trans, qty), cost, uc.flags.AllowDuplicateMovements); err != nil {
			return err
		}
		if err := oc.trans.SetState(entity.StateCommerceSold); err != nil {
			return err
		}
		return oc.save(prevState, prevQty)
	})
}

// Returned devuelve stock: con cantidad es una devolución parcial, sin cantidad total.
func (uc *TransactionUseCase) Returned(ctx context.Context, actor, transactionID string, qty *decimal.Decimal, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	if qty != nil {
		return uc.ReturnedPartial(ctx, actor, transactionID, *qty, reason, cost)
	}
	return uc.ReturnedAll(ctx, actor, transactionID, reason, cost)
}

// ReturnedPartial devuelve parte de la cantidad al stock. El estado pasa por
// "returned-partial" y vuelve al estado previo; si la cantidad cubre el total,
// se promueve a devolución completa.
func (uc *TransactionUseCase) ReturnedPartial(ctx context.Context, actor, transactionID string, qty decimal.Decimal, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	promoted, trans, err := uc.promoteIfCoversAll(ctx, actor, transactionID, qty, func() (*entity.InventoryTransaction, error) {
		return uc.ReturnedAll(ctx, actor, transactionID, reason, cost)
	})
	if promoted || err != nil {
		return trans, err
	}
	return uc.partial(ctx, actor, transactionID, inventory.OpReturnedPartial, qty, reason, cost, true)
}

// ReturnedAll devuelve la cantidad completa al stock y deja la transacción en "returned".
func (uc *TransactionUseCase) ReturnedAll(ctx context.Context, actor, transactionID string, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpReturned, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpReturned); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		if err := oc.put(prevQty, reasonFor(inventory.OpReturned, reason, oc.trans, prevQty), cost, uc.flags.AllowDuplicateMovements); err != nil {
			return err
		}
		if err := oc.trans.SetState(entity.StateCommerceReturned); err != nil {
			return err
		}
		oc.trans.Quantity = decimal.Zero
		return oc.save(prevState, prevQty)
	})
}

// Reserved reserva stock para la transacción. Desde "checkout" solo cambia el
// estado (el stock ya se tomó). Si no hay existencia suficiente y backOrder es
// true, la operación degrada a BackOrder en lugar de fallar.
func (uc *TransactionUseCase) Reserved(ctx context.Context, actor, transactionID string, qty decimal.Decimal, backOrder bool, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	trans, err := uc.withTransaction(ctx, actor, transactionID, inventory.OpReserved, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpReserved); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		fromCheckout := oc.trans.State == entity.StateCommerceCheckout
		if !fromCheckout {
			if err := oc.trans.SetQuantity(qty); err != nil {
				return err
			}
			if err := oc.take(qty, reasonFor(inventory.OpReserved, reason, oc.trans, qty), cost, uc.flags.AllowDuplicateMovements); err != nil {
				return err
			}
		}
		if err := oc.trans.SetState(entity.StateCommerceReserved); err != nil {
			return err
		}
		return oc.save(prevState, prevQty)
	})
	var notEnough *domain.NotEnoughStockError
	if err != nil && backOrder && errors.As(err, &notEnough) {
		return uc.BackOrder(ctx, actor, transactionID, qty)
	}
	return trans, err
}

// BackOrder registra un pedido pendiente de stock. No toma existencia: la
// cantidad puede superar lo disponible (se cubre después con FillBackOrder).
func (uc *TransactionUseCase) BackOrder(ctx context.Context, actor, transactionID string, qty decimal.Decimal) (*entity.InventoryTransaction, error) {
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpBackOrder, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpBackOrder); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		if err := oc.trans.SetQuantity(qty); err != nil {
			return err
		}
		if err := oc.trans.SetState(entity.StateCommerceBackOrdered); err != nil {
			return err
		}
		return oc.save(prevState, prevQty)
	})
}

// FillBackOrder cubre el back-order tomando la cantidad pendiente del stock.
// Propaga NotEnoughStockError si aún no alcanza la existencia.
func (uc *TransactionUseCase) FillBackOrder(ctx context.Context, actor, transactionID string, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpBackOrderFilled, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpBackOrderFilled); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		if err := oc.take(prevQty, reasonFor(inventory.OpBackOrderFilled, reason, oc.trans, prevQty), cost, uc.flags.AllowDuplicateMovements); err != nil {
			return err
		}
		if err := oc.trans.SetState(entity.StateCommerceBackOrderFilled); err != nil {
			return err
		}
		return oc.save(prevState, prevQty)
	})
}
