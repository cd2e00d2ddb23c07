package entity

import "time"

// Warehouse representa una bodega/ubicación física de inventario.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
