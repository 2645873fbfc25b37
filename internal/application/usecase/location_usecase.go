package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medstock-api/internal/application/dto"
	"github.com/jhoicas/medstock-api/internal/domain"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// LocationUseCase CRUD de ubicaciones de stock. Sin eliminación física: el
// historial de transferencias referencia ubicaciones, así que solo se desactivan.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository, userRepo repository.UserRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo, userRepo: userRepo}
}

// Create registra una ubicación activa.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*entity.Location, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ResponsibleUserID != nil {
		responsible, err := uc.userRepo.GetByID(*in.ResponsibleUserID)
		if err != nil {
			return nil, err
		}
		if responsible == nil {
			return nil, domain.ErrUserNotFound
		}
	}
	now := time.Now()
	location := &entity.Location{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		IsActive:          true,
		ResponsibleUserID: in.ResponsibleUserID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

// GetByID obtiene una ubicación.
func (uc *LocationUseCase) GetByID(id string) (*entity.Location, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return location, nil
}

// Update modifica nombre, descripción y responsable.
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*entity.Location, error) {
	location, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	location.Name = strings.TrimSpace(in.Name)
	location.Description = in.Description
	location.ResponsibleUserID = in.ResponsibleUserID
	location.UpdatedAt = time.Now()
	if err := uc.locationRepo.Update(location); err != nil {
		return nil, err
	}
	return location, nil
}

// Deactivate saca la ubicación de circulación sin borrarla.
func (uc *LocationUseCase) Deactivate(id string) (*entity.Location, error) {
	location, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	location.IsActive = false
	location.UpdatedAt = time.Now()
	if err := uc.locationRepo.Update(location); err != nil {
		return nil, err
	}
	return location, nil
}

// List devuelve las ubicaciones, activas por defecto.
func (uc *LocationUseCase) List(includeInactive bool, limit, offset int) ([]*entity.Location, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.locationRepo.List(includeInactive, limit, offset)
}
