package entity

import "time"

// Location representa una ubicación física de stock (depósito, sucursal, vehículo técnico).
// Nunca se elimina físicamente: el historial de transferencias la referencia,
// por lo que el ciclo de vida termina en IsActive = false.
type Location struct {
	ID                string
	Name              string
	Description       string
	IsActive          bool
	ResponsibleUserID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
