package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func TestGenerateSKU(t *testing.T) {
	cases := []struct {
		name     string
		category string
		sequence int
		want     string
	}{
		{"categoría normal", "Electrónica", 42, "ELE00000042"},
		{"categoría corta", "TV", 1, "TV00000001"},
		{"categoría con espacios", "  ropa hombre ", 7, "ROP00000007"},
		{"categoría vacía usa fallback", "", 3, "SKU00000003"},
		{"secuencia grande", "FER", 12345678, "FER12345678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.GenerateSKU(tc.category, tc.sequence))
		})
	}
}

func TestAverageCost(t *testing.T) {
	// 10 unidades a $100 + 10 unidades a $200 → promedio $150
	got := inventory.AverageCost(
		decimal.NewFromInt(10), decimal.NewFromInt(100),
		decimal.NewFromInt(10), decimal.NewFromInt(200),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(150)), "promedio ponderado: esperado 150, got %s", got)
}

func TestAverageCost_SinExistenciaPrevia(t *testing.T) {
	got := inventory.AverageCost(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(5), decimal.NewFromInt(80),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(80)), "sin stock previo el promedio es el costo de entrada")
}

func TestAverageCost_TotalCeroDevuelveCero(t *testing.T) {
	got := inventory.AverageCost(decimal.Zero, decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(20))
	assert.True(t, got.IsZero(), "con cantidad total cero no hay promedio que calcular")
}
