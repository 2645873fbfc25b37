package entity

import "time"

// TransferRecord es el hecho histórico, append-only, de un movimiento ejecutado.
// Los campos estructurales (origen, destino, ítem, cantidad) son inmutables;
// únicamente los campos de verificación pueden fijarse después, una sola vez.
//
// IsVerified: nil = pendiente de verificación (transferencias directas de no-admins),
// true/false = veredicto del admin. La verificación es auditoría: nunca revierte
// el movimiento ya aplicado.
type TransferRecord struct {
	ID                string
	FromLocationID    string
	ToLocationID      string
	ProductID         string
	ItemKind          string
	Quantity          int64
	NewStatus         *string // estado aplicado al ítem en destino, si se pidió
	Notes             string
	TransferredByID   string
	TransferredByRole string
	SentByID          *string // confirmación del lado origen
	ReceivedByID      *string // confirmación del lado destino
	TransferDate      time.Time
	IsVerified        *bool
	VerifiedByID      *string
	VerificationDate  *time.Time
	CreatedAt         time.Time
}

// NeedsVerification indica si el registro está en la cola de verificación:
// ejecutado directamente por un no-admin y todavía sin veredicto.
func (t *TransferRecord) NeedsVerification() bool {
	return t.TransferredByRole != RoleAdmin && t.IsVerified == nil
}
