package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateCost(id string, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	// CountByCategory cuenta productos de una categoría (secuencia para SKU generado).
	CountByCategory(categoryCode string) (int, error)
}
