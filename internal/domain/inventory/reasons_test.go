package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func TestReason_InterpolaPlaceholders(t *testing.T) {
	got := inventory.Reason("stock.rollback", map[string]string{
		"id":   "mov-123",
		"date": "2024-05-01",
	})
	assert.Equal(t, "Rollback del movimiento ID mov-123 (fecha 2024-05-01)", got)
}

func TestReason_ClaveDesconocidaDevuelveLaClave(t *testing.T) {
	assert.Equal(t, "motivo libre del usuario",
		inventory.Reason("motivo libre del usuario", nil),
		"una clave fuera del catálogo se usa tal cual como motivo")
}

func TestReason_SinPlaceholders(t *testing.T) {
	assert.Equal(t, "Registro inicial de stock", inventory.Reason("stock.first", nil))
}

func TestInterpolate_PlaceholderAusenteQuedaIntacto(t *testing.T) {
	got := inventory.Interpolate("cantidad :quantity de :id", map[string]string{"quantity": "5"})
	assert.Equal(t, "cantidad 5 de :id", got,
		"los placeholders sin valor se conservan en el mensaje")
}
