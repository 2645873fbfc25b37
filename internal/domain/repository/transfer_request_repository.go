package repository

import "github.com/jhoicas/medstock-api/internal/domain/entity"

// RequestFilters filtros para listar solicitudes de transferencia.
// ForUserID/ForLocationID implementan el alcance por rol: si alguno está
// presente, solo se devuelven solicitudes creadas por ese usuario o destinadas
// a esa ubicación (los admins listan sin alcance).
type RequestFilters struct {
	Status        string
	Urgency       string
	Search        string // producto o motivo
	ForUserID     string
	ForLocationID string
	Limit         int
	Offset        int
}

// RequestSummary conteos por estado para la cabecera del listado.
type RequestSummary struct {
	Total     int
	Pending   int
	Approved  int
	Rejected  int
	Completed int
}

// TransferRequestView solicitud enriquecida con nombres para el listado.
type TransferRequestView struct {
	entity.TransferRequest
	FromLocationName string
	ToLocationName   string
	ProductName      string
	RequestedByName  string
	ReviewedByName   string
}

// TransferRequestRepository define el puerto de las solicitudes de transferencia.
type TransferRequestRepository interface {
	Create(req *entity.TransferRequest) error
	GetByID(id string) (*entity.TransferRequest, error)
	// GetForUpdate bloquea la solicitud para impedir revisiones concurrentes.
	GetForUpdate(id string) (*entity.TransferRequest, error)
	// UpdateReview persiste estado, revisor, fecha y notas de revisión.
	UpdateReview(req *entity.TransferRequest) error
	List(f RequestFilters) ([]*TransferRequestView, int, *RequestSummary, error)
	// NextTransferCode genera el siguiente código secuencial STR-XXXX.
	NextTransferCode() (string, error)
}
