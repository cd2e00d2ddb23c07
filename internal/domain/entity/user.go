package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
)

// User usuario de la aplicación. Es el "actor" que queda registrado como
// CreatedBy en stocks, movimientos y transacciones.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | bodeguero
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
