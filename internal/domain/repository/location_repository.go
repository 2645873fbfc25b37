package repository

import "github.com/jhoicas/medstock-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location (DIP).
// No hay Delete: las ubicaciones se desactivan porque el historial las referencia.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	Update(location *entity.Location) error
	List(includeInactive bool, limit, offset int) ([]*entity.Location, error)
}
