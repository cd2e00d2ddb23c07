package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrStockNotFound      = errors.New("la transacción no tiene stock asociado")
	ErrStockAlreadyExists = errors.New("ya existe stock para ese producto en esa bodega")
	ErrSkuAlreadyExists   = errors.New("el SKU ya está registrado")
	ErrNoUserLoggedIn     = errors.New("operación requiere un usuario autenticado")
)

// NotEnoughStockError indica que un take dejaría la cantidad en negativo.
// Lleva la cantidad solicitada y la disponible para que el caller pueda informar ambas.
type NotEnoughStockError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *NotEnoughStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: solicitado %s, disponible %s",
		e.Requested.String(), e.Available.String())
}

// InvalidQuantityError indica una cantidad negativa en una operación de stock o transacción.
type InvalidQuantityError struct {
	Quantity decimal.Decimal
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("cantidad inválida: %s", e.Quantity.String())
}

// InvalidMovementError indica una referencia de movimiento que no es un ID válido
// o no corresponde al stock sobre el que se opera.
type InvalidMovementError struct {
	Ref string
}

func (e *InvalidMovementError) Error() string {
	return fmt.Sprintf("movimiento inválido: %q", e.Ref)
}

// InvalidTransactionStateError indica una transición no permitida desde el estado actual.
type InvalidTransactionStateError struct {
	Current string
	Target  string
}

func (e *InvalidTransactionStateError) Error() string {
	return fmt.Sprintf("transición de estado inválida: de %q a %q", e.Current, e.Target)
}
