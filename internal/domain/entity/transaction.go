package entity

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionState estado de una transacción de inventario.
type TransactionState string

// Estados válidos de la máquina de estados de transacciones.
const (
	StateOpened                  TransactionState = "opened"
	StateCommerceCheckout        TransactionState = "commerce-checkout"
	StateCommerceSold            TransactionState = "commerce-sold"
	StateCommerceReturned        TransactionState = "commerce-returned"
	StateCommerceReturnedPartial TransactionState = "commerce-returned-partial"
	StateCommerceReserved        TransactionState = "commerce-reserved"
	StateCommerceBackOrdered     TransactionState = "commerce-back-ordered"
	StateCommerceBackOrderFilled TransactionState = "commerce-back-order-filled"
	StateOrderedPending          TransactionState = "order-on-order"
	StateOrderedReceived         TransactionState = "order-received"
	StateOrderedReceivedPartial  TransactionState = "order-received-partial"
	StateInventoryOnHold         TransactionState = "inventory-on-hold"
	StateInventoryReleased       TransactionState = "inventory-released"
	StateInventoryReleasedPartial TransactionState = "inventory-released-partial"
	StateInventoryRemoved        TransactionState = "inventory-removed"
	StateInventoryRemovedPartial TransactionState = "inventory-removed-partial"
	StateCancelled               TransactionState = "cancelled"
)

var validStates = map[TransactionState]struct{}{
	StateOpened: {}, StateCommerceCheckout: {}, StateCommerceSold: {},
	StateCommerceReturned: {}, StateCommerceReturnedPartial: {},
	StateCommerceReserved: {}, StateCommerceBackOrdered: {},
	StateCommerceBackOrderFilled: {}, StateOrderedPending: {},
	StateOrderedReceived: {}, StateOrderedReceivedPartial: {},
	StateInventoryOnHold: {}, StateInventoryReleased: {},
	StateInventoryReleasedPartial: {}, StateInventoryRemoved: {},
	StateInventoryRemovedPartial: {}, StateCancelled: {},
}

// Valid indica si el estado pertenece al conjunto de estados reconocidos.
func (s TransactionState) Valid() bool {
	_, ok := validStates[s]
	return ok
}

// InventoryTransaction representa una operación de negocio multi-paso (comercio
// o bodega) sobre un StockRecord. El estado y la cantidad se asignan mediante
// SetState/SetQuantity, que validan en el momento (no al persistir).
type InventoryTransaction struct {
	ID        string
	StockID   string
	Name      string
	State     TransactionState
	Quantity  decimal.Decimal
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetState asigna el estado validando que pertenezca al conjunto reconocido.
// No valida la transición (eso lo hace la máquina de estados con el estado previo).
func (t *InventoryTransaction) SetState(state TransactionState) error {
	if !state.Valid() {
		return &domain.InvalidTransactionStateError{Current: string(t.State), Target: string(state)}
	}
	t.State = state
	return nil
}

// SetQuantity asigna la cantidad rechazando valores negativos en el momento.
func (t *InventoryTransaction) SetQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return &domain.InvalidQuantityError{Quantity: quantity}
	}
	t.Quantity = quantity
	return nil
}
