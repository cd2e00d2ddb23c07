package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la tabla de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateTransition_TransicionesPermitidas(t *testing.T) {
	cases := []struct {
		name    string
		current entity.TransactionState
		op      inventory.Operation
	}{
		{"checkout desde opened", entity.StateOpened, inventory.OpCheckout},
		{"checkout desde reservado", entity.StateCommerceReserved, inventory.OpCheckout},
		{"sold desde opened", entity.StateOpened, inventory.OpSold},
		{"sold desde checkout", entity.StateCommerceCheckout, inventory.OpSold},
		{"sold desde devolución parcial", entity.StateCommerceReturnedPartial, inventory.OpSold},
		{"returned desde vendida", entity.StateCommerceSold, inventory.OpReturned},
		{"reserved desde checkout", entity.StateCommerceCheckout, inventory.OpReserved},
		{"back-order-filled desde back-order", entity.StateCommerceBackOrdered, inventory.OpBackOrderFilled},
		{"received desde pedido", entity.StateOrderedPending, inventory.OpReceived},
		{"ordered desde recepción parcial", entity.StateOrderedReceivedPartial, inventory.OpOrdered},
		{"released desde on-hold", entity.StateInventoryOnHold, inventory.OpReleased},
		{"removed desde on-hold", entity.StateInventoryOnHold, inventory.OpRemoved},
		{"cancelled desde checkout", entity.StateCommerceCheckout, inventory.OpCancelled},
		{"hold desde opened", entity.StateOpened, inventory.OpHold},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, inventory.ValidateTransition(tc.current, tc.op),
				"la transición debe estar permitida")
		})
	}
}

func TestValidateTransition_TransicionesRechazadas(t *testing.T) {
	cases := []struct {
		name    string
		current entity.TransactionState
		op      inventory.Operation
	}{
		{"returned desde opened", entity.StateOpened, inventory.OpReturned},
		{"checkout desde vendida", entity.StateCommerceSold, inventory.OpCheckout},
		{"received sin orden previa", entity.StateOpened, inventory.OpReceived},
		{"released sin hold previo", entity.StateOpened, inventory.OpReleased},
		{"back-order-filled sin back-order", entity.StateOpened, inventory.OpBackOrderFilled},
		{"cancelled desde vendida", entity.StateCommerceSold, inventory.OpCancelled},
		{"cancelled desde cancelada", entity.StateCancelled, inventory.OpCancelled},
		{"hold desde checkout", entity.StateCommerceCheckout, inventory.OpHold},
		{"ordered desde recibida total", entity.StateOrderedReceived, inventory.OpOrdered},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := inventory.ValidateTransition(tc.current, tc.op)
			require.Error(t, err, "la transición debe rechazarse")

			var stateErr *domain.InvalidTransactionStateError
			require.ErrorAs(t, err, &stateErr, "el error debe ser InvalidTransactionStateError")
			assert.Equal(t, string(tc.current), stateErr.Current,
				"el error debe llevar el estado actual")
		})
	}
}

// Cancelled es terminal: ninguna operación sale de él.
func TestValidateTransition_CancelledEsTerminal(t *testing.T) {
	ops := []inventory.Operation{
		inventory.OpCheckout, inventory.OpSold, inventory.OpReturned,
		inventory.OpReserved, inventory.OpBackOrder, inventory.OpOrdered,
		inventory.OpReceived, inventory.OpHold, inventory.OpReleased,
		inventory.OpRemoved, inventory.OpCancelled,
	}
	for _, op := range ops {
		assert.Error(t, inventory.ValidateTransition(entity.StateCancelled, op),
			"desde cancelled no debe permitirse %s", op)
	}
}

func TestTargetState(t *testing.T) {
	assert.Equal(t, entity.StateCommerceCheckout, inventory.TargetState(inventory.OpCheckout))
	assert.Equal(t, entity.StateCommerceSold, inventory.TargetState(inventory.OpSoldAmount))
	assert.Equal(t, entity.StateOrderedPending, inventory.TargetState(inventory.OpOrdered))
	assert.Equal(t, entity.StateCancelled, inventory.TargetState(inventory.OpCancelled))
}
