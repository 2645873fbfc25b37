package repository

import (
	"time"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

// TransferFilters filtros del historial de transferencias.
type TransferFilters struct {
	LocationID  string // origen o destino
	From        *time.Time
	To          *time.Time
	Search      string // nombre del producto
	PendingOnly bool   // solo registros pendientes de verificación
	Limit       int
	Offset      int
}

// TransferRecordView registro enriquecido con nombres para el historial.
type TransferRecordView struct {
	entity.TransferRecord
	FromLocationName  string
	ToLocationName    string
	ProductName       string
	TransferredByName string
	VerifiedByName    string
}

// TransferRecordRepository define el puerto del historial append-only de
// transferencias. Los campos estructurales nunca se actualizan; solo la
// verificación se fija a posteriori, una única vez.
type TransferRecordRepository interface {
	Create(rec *entity.TransferRecord) error
	GetByID(id string) (*entity.TransferRecord, error)
	// GetForUpdate bloquea el registro para serializar la verificación.
	GetForUpdate(id string) (*entity.TransferRecord, error)
	// SetVerification fija el veredicto. El caso de uso garantiza que solo se llama
	// sobre registros con IsVerified == nil.
	SetVerification(id string, verified bool, verifiedByID string, at time.Time) error
	// Delete elimina un registro no verificado (rollback administrativo).
	Delete(id string) error
	GetView(id string) (*TransferRecordView, error)
	List(f TransferFilters) ([]*TransferRecordView, int, error)
}
