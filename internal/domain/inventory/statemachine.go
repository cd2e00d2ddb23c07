// Package inventory contiene los servicios de dominio del motor de inventario:
// la tabla de transiciones de la máquina de estados de transacciones, el
// catálogo de motivos por defecto, la generación de SKU y el costo promedio.
package inventory

import (
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StateNew representa una transacción recién instanciada, aún sin persistir.
// En la tabla de transiciones equivale al estado "null" del contrato.
const StateNew entity.TransactionState = ""

// Operation nombre de una operación de la máquina de estados. Es también la
// clave del catálogo de motivos y el sufijo del evento de dominio emitido.
type Operation string

const (
	OpCheckout        Operation = "checkout"
	OpSold            Operation = "sold"
	OpSoldAmount      Operation = "sold-amount"
	OpReturned        Operation = "returned"
	OpReturnedPartial Operation = "returned-partial"
	OpReserved        Operation = "reserved"
	OpBackOrder       Operation = "back-order"
	OpBackOrderFilled Operation = "back-order-filled"
	OpOrdered         Operation = "ordered"
	OpReceived        Operation = "received"
	OpReceivedPartial Operation = "received-partial"
	OpHold            Operation = "hold"
	OpReleased        Operation = "released"
	OpReleasedPartial Operation = "released-partial"
	OpRemoved         Operation = "removed"
	OpRemovedPartial  Operation = "removed-partial"
	OpCancelled       Operation = "cancelled"
)

// allowedPrevious estados desde los que cada operación puede ejecutarse.
// Es el contrato autoritativo de la máquina de estados: la validación corre
// ANTES de cualquier mutación de stock, de modo que una transición rechazada
// no deja pares (estado, stock) inconsistentes.
var allowedPrevious = map[Operation][]entity.TransactionState{
	OpCheckout: {StateNew, entity.StateOpened, entity.StateCommerceReserved},
	OpSold: {
		StateNew, entity.StateOpened,
		entity.StateCommerceCheckout, entity.StateCommerceReserved,
		entity.StateCommerceBackOrdered, entity.StateCommerceReturned,
		entity.StateCommerceReturnedPartial,
	},
	OpSoldAmount: {StateNew, entity.StateOpened},
	OpReturned: {
		entity.StateCommerceSold, entity.StateCommerceReserved,
		entity.StateCommerceCheckout, entity.StateCommerceReturnedPartial,
	},
	OpReturnedPartial: {
		entity.StateCommerceSold, entity.StateCommerceReserved,
		entity.StateCommerceCheckout, entity.StateCommerceReturnedPartial,
	},
	OpReserved: {
		StateNew, entity.StateOpened,
		entity.StateCommerceBackOrdered, entity.StateCommerceCheckout,
	},
	OpBackOrder:       {StateNew, entity.StateOpened},
	OpBackOrderFilled: {entity.StateCommerceBackOrdered},
	OpOrdered:         {StateNew, entity.StateOpened, entity.StateOrderedReceivedPartial},
	OpReceived:        {entity.StateOrderedPending},
	OpReceivedPartial: {entity.StateOrderedPending},
	OpHold:            {StateNew, entity.StateOpened},
	OpReleased:        {entity.StateInventoryOnHold},
	OpReleasedPartial: {entity.StateInventoryOnHold},
	OpRemoved:         {entity.StateInventoryOnHold},
	OpRemovedPartial:  {StateNew, entity.StateOpened, entity.StateInventoryOnHold},
	OpCancelled: {
		StateNew, entity.StateOpened, entity.StateCommerceCheckout,
		entity.StateCommerceReserved, entity.StateCommerceBackOrdered,
		entity.StateOrderedPending, entity.StateInventoryOnHold,
	},
}

// targetState estado resultante nominal de cada operación (las variantes
// parciales vuelven después al estado previo; eso lo maneja el caso de uso).
var targetState = map[Operation]entity.TransactionState{
	OpCheckout:        entity.StateCommerceCheckout,
	OpSold:            entity.StateCommerceSold,
	OpSoldAmount:      entity.StateCommerceSold,
	OpReturned:        entity.StateCommerceReturned,
	OpReturnedPartial: entity.StateCommerceReturnedPartial,
	OpReserved:        entity.StateCommerceReserved,
	OpBackOrder:       entity.StateCommerceBackOrdered,
	OpBackOrderFilled: entity.StateCommerceBackOrderFilled,
	OpOrdered:         entity.StateOrderedPending,
	OpReceived:        entity.StateOrderedReceived,
	OpReceivedPartial: entity.StateOrderedReceivedPartial,
	OpHold:            entity.StateInventoryOnHold,
	OpReleased:        entity.StateInventoryReleased,
	OpReleasedPartial: entity.StateInventoryReleasedPartial,
	OpRemoved:         entity.StateInventoryRemoved,
	OpRemovedPartial:  entity.StateInventoryRemovedPartial,
	OpCancelled:       entity.StateCancelled,
}

// TargetState devuelve el estado destino nominal de la operación.
func TargetState(op Operation) entity.TransactionState {
	return targetState[op]
}

// ValidateTransition verifica que la operación pueda ejecutarse desde el estado
// actual. Devuelve InvalidTransactionStateError con estado actual y destino si no.
func ValidateTransition(current entity.TransactionState, op Operation) error {
	for _, allowed := range allowedPrevious[op] {
		if current == allowed {
			return nil
		}
	}
	return &domain.InvalidTransactionStateError{
		Current: string(current),
		Target:  string(targetState[op]),
	}
}
