package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// Ensure LocationRepository implements the interface.
var _ repository.LocationRepository = (*LocationRepository)(nil)

// LocationRepository implementación PostgreSQL de las ubicaciones de stock.
type LocationRepository struct {
	db Querier
}

// NewLocationRepository crea el repositorio sobre un pool o una transacción.
func NewLocationRepository(db Querier) *LocationRepository {
	return &LocationRepository{db: db}
}

const locationColumns = `id, name, description, is_active, responsible_user_id, created_at, updated_at`

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var loc entity.Location
	err := row.Scan(
		&loc.ID, &loc.Name, &loc.Description, &loc.IsActive,
		&loc.ResponsibleUserID, &loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan location: %w", err)
	}
	return &loc, nil
}

// Create inserta una ubicación.
func (r *LocationRepository) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(context.Background(), query,
		location.ID, location.Name, location.Description, location.IsActive,
		location.ResponsibleUserID, location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID devuelve la ubicación o nil si no existe.
func (r *LocationRepository) GetByID(id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	return scanLocation(r.db.QueryRow(context.Background(), query, id))
}

// Update actualiza los campos editables de la ubicación.
func (r *LocationRepository) Update(location *entity.Location) error {
	query := `
		UPDATE locations
		SET name = $2, description = $3, is_active = $4, responsible_user_id = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.db.Exec(context.Background(), query,
		location.ID, location.Name, location.Description, location.IsActive,
		location.ResponsibleUserID, location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update location: ubicación %s no encontrada", location.ID)
	}
	return nil
}

// List devuelve las ubicaciones ordenadas por nombre. Por defecto solo las activas.
func (r *LocationRepository) List(includeInactive bool, limit, offset int) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations`
	var args []any
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locations []*entity.Location
	for rows.Next() {
		var loc entity.Location
		err := rows.Scan(
			&loc.ID, &loc.Name, &loc.Description, &loc.IsActive,
			&loc.ResponsibleUserID, &loc.CreatedAt, &loc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, &loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return locations, nil
}
