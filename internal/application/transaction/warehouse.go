package transaction

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// Operaciones de bodega: órdenes de compra, recepción, retención, liberación,
// remoción y cancelación.

// Ordered registra una orden de compra pendiente. No toca stock: la existencia
// entra cuando se recibe la orden.
func (uc *TransactionUseCase) Ordered(ctx context.Context, actor, transactionID string, qty decimal.Decimal) (*entity.InventoryTransaction, error) {
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpOrdered, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpOrdered); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		if err := oc.trans.SetQuantity(qty); err != nil {
			return err
		}
		if err := oc.trans.SetState(entity.StateOrderedPending); err != nil {
			return err
		}
		return oc.save(prevState, prevQty)
	})
}

// Received recibe la orden: con cantidad es recepción parcial, sin cantidad total.
func (uc *TransactionUseCase) Received(ctx context.Context, actor, transactionID string, qty *decimal.Decimal, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	if qty != nil {
		return uc.ReceivedPartial(ctx, actor, transactionID, *qty, reason, cost)
	}
	return uc.ReceivedAll(ctx, actor, transactionID, reason, cost)
}

// ReceivedPartial ingresa al stock una parte de la orden; la cantidad restante
// queda pendiente y el estado vuelve a "order-on-order". Si la cantidad cubre
// el total pendiente, se promueve a recepción completa.
func (uc *TransactionUseCase) ReceivedPartial(ctx context.Context, actor, transactionID string, qty decimal.Decimal, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	promoted, trans, err := uc.promoteIfCoversAll(ctx, actor, transactionID, qty, func() (*entity.InventoryTransaction, error) {
		return uc.ReceivedAll(ctx, actor, transactionID, reason, cost)
	})
	if promoted || err != nil {
		return trans, err
	}
	return uc.partial(ctx, actor, transactionID, inventory.OpReceivedPartial, qty, reason, cost, true)
}

// ReceivedAll ingresa al stock la cantidad completa de la orden.
func (uc *TransactionUseCase) ReceivedAll(ctx context.Context, actor, transactionID string, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpReceived, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpReceived); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		if err := oc.put(prevQty, reasonFor(inventory.OpReceived, reason, oc.trans, prevQty), cost, uc.flags.AllowDuplicateMovements); err != nil {
			return err
		}
		if err := oc.trans.SetState(entity.StateOrderedReceived); err != nil {
			return err
		}
		oc.trans.Quantity = decimal.Zero
		return oc.save(prevState, prevQty)
	})
}

// Hold retiene stock: lo toma de la existencia y lo deja asociado a la transacción.
func (uc *TransactionUseCase) Hold(ctx context.Context, actor, transactionID string, qty decimal.Decimal, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpHold, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpHold); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		if err := oc.trans.SetQuantity(qty); err != nil {
			return err
		}
		if err := oc.take(qty, reasonFor(inventory.OpHold, reason, oc.trans, qty), cost, uc.flags.AllowDuplicateMovements); err != nil {
			return err
		}
		if err := oc.trans.SetState(entity.StateInventoryOnHold); err != nil {
			return err
		}
		return oc.save(prevState, prevQty)
	})
}

// Release libera stock retenido: con cantidad es liberación parcial, sin cantidad total.
func (uc *TransactionUseCase) Release(ctx context.Context, actor, transactionID string, qty *decimal.Decimal, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	if qty != nil {
		return uc.ReleasePartial(ctx, actor, transactionID, *qty, reason, cost)
	}
	return uc.ReleaseAll(ctx, actor, transactionID, reason, cost)
}

// ReleasePartial devuelve al stock parte de lo retenido; el resto sigue en
// "inventory-on-hold". Si la cantidad cubre el total, libera todo.
func (uc *TransactionUseCase) ReleasePartial(ctx context.Context, actor, transactionID string, qty decimal.Decimal, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	promoted, trans, err := uc.promoteIfCoversAll(ctx, actor, transactionID, qty, func() (*entity.InventoryTransaction, error) {
		return uc.ReleaseAll(ctx, actor, transactionID, reason, cost)
	})
	if promoted || err != nil {
		return trans, err
	}
	return uc.partial(ctx, actor, transactionID, inventory.OpReleasedPartial, qty, reason, cost, true)
}

// ReleaseAll devuelve al stock todo lo retenido.
func (uc *TransactionUseCase) ReleaseAll(ctx context.Context, actor, transactionID string, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpReleased, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpReleased); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		if err := oc.put(prevQty, reasonFor(inventory.OpReleased, reason, oc.trans, prevQty), cost, uc.flags.AllowDuplicateMovements); err != nil {
			return err
		}
		if err := oc.trans.SetState(entity.StateInventoryReleased); err != nil {
			return err
		}
		oc.trans.Quantity = decimal.Zero
		return oc.save(prevState, prevQty)
	})
}

// Remove remueve stock definitivamente: con cantidad es remoción parcial.
func (uc *TransactionUseCase) Remove(ctx context.Context, actor, transactionID string, qty *decimal.Decimal, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	if qty != nil {
		return uc.RemovePartial(ctx, actor, transactionID, *qty, reason, cost)
	}
	return uc.RemoveAll(ctx, actor, transactionID)
}

// RemovePartial remueve una parte. Desde "inventory-on-hold" el stock ya fue
// tomado al retener, así que solo reduce la cantidad retenida; desde una
// transacción nueva toma la cantidad del stock y queda directamente en "removed".
func (uc *TransactionUseCase) RemovePartial(ctx context.Context, actor, transactionID string, qty decimal.Decimal, reason string, cost decimal.Decimal) (*entity.InventoryTransaction, error) {
	trans, err := uc.txRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if trans != nil && trans.State == entity.StateInventoryOnHold {
		if qty.GreaterThanOrEqual(trans.Quantity) && trans.Quantity.GreaterThan(decimal.Zero) {
			return uc.RemoveAll(ctx, actor, transactionID)
		}
		// Sin put: lo removido no vuelve al stock.
		return uc.partial(ctx, actor, transactionID, inventory.OpRemovedPartial, qty, reason, cost, false)
	}
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpRemovedPartial, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpRemovedPartial); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		if err := oc.trans.SetQuantity(qty); err != nil {
			return err
		}
		if err := oc.take(qty, reasonFor(inventory.OpRemovedPartial, reason, oc.trans, qty), cost, uc.flags.AllowDuplicateMovements); err != nil {
			return err
		}
		if err := oc.trans.SetState(entity.StateInventoryRemoved); err != nil {
			return err
		}
		return oc.save(prevState, prevQty)
	})
}

// RemoveAll marca como removido todo lo retenido. No toca stock: la existencia
// salió al momento del Hold.
func (uc *TransactionUseCase) RemoveAll(ctx context.Context, actor, transactionID string) (*entity.InventoryTransaction, error) {
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpRemoved, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpRemoved); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		if err := oc.trans.SetState(entity.StateInventoryRemoved); err != nil {
			return err
		}
		oc.trans.Quantity = decimal.Zero
		return oc.save(prevState, prevQty)
	})
}

// Cancel cancela la transacción. Si venía de checkout, reserva o retención, el
// stock tomado vuelve a la existencia; en los demás estados no hay stock que devolver.
func (uc *TransactionUseCase) Cancel(ctx context.Context, actor, transactionID string, reason string) (*entity.InventoryTransaction, error) {
	return uc.withTransaction(ctx, actor, transactionID, inventory.OpCancelled, func(oc *opContext) error {
		if err := inventory.ValidateTransition(oc.trans.State, inventory.OpCancelled); err != nil {
			return err
		}
		prevState, prevQty := oc.trans.State, oc.trans.Quantity
		switch prevState {
		case entity.StateCommerceCheckout, entity.StateCommerceReserved, entity.StateInventoryOnHold:
			if err := oc.put(prevQty, reasonFor(inventory.OpCancelled, reason, oc.trans, prevQty), decimal.Zero, uc.flags.AllowDuplicateMovements); err != nil {
				return err
			}
		}
		if err := oc.trans.SetState(entity.StateCancelled); err != nil {
			return err
		}
		oc.trans.Quantity = decimal.Zero
		return oc.save(prevState, prevQty)
	})
}
