package entity

import "time"

// Estados de una solicitud de transferencia.
// PENDING → APPROVED | REJECTED; APPROVED → COMPLETED (inmediato tras ejecutar).
const (
	RequestStatusPending   = "PENDING"
	RequestStatusApproved  = "APPROVED"
	RequestStatusRejected  = "REJECTED"
	RequestStatusCompleted = "COMPLETED"
)

// Urgencia declarada por el solicitante.
const (
	UrgencyLow    = "LOW"
	UrgencyMedium = "MEDIUM"
	UrgencyHigh   = "HIGH"
)

// TransferRequest es la propuesta de movimiento iniciada por un empleado, que
// requiere revisión administrativa antes de ejecutarse. Inmutable una vez que
// sale de PENDING, salvo la transición terminal APPROVED → COMPLETED.
type TransferRequest struct {
	ID                string
	TransferCode      string // STR-XXXX, secuencial
	FromLocationID    string
	ToLocationID      string
	ProductID         string
	ItemKind          string
	RequestedQuantity int64
	Reason            string
	Urgency           string
	Status            string
	RequestedByID     string
	ReviewedByID      *string
	ReviewedAt        *time.Time
	ReviewNotes       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsValidUrgency indica si un valor pertenece al enum de urgencias.
func IsValidUrgency(s string) bool {
	return s == UrgencyLow || s == UrgencyMedium || s == UrgencyHigh
}
