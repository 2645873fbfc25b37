package repository

import "github.com/jhoicas/medstock-api/internal/domain/entity"

// ProductFilters filtros del catálogo.
type ProductFilters struct {
	ItemKind string
	Type     string
	Search   string
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStatus cambia solo el estado de un dispositivo (usado por el ejecutor
	// cuando una transferencia pide newStatus).
	UpdateStatus(id, status string) error
	List(f ProductFilters) ([]*entity.Product, int, error)
}
