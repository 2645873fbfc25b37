package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// Ensure StockRepository implements the interface.
var _ repository.StockRepository = (*StockRepository)(nil)

// StockRepository implementación PostgreSQL del libro de stock.
// Acepta un Querier para poder operar tanto sobre el pool como atado a una
// transacción (vía TxRunner).
type StockRepository struct {
	db Querier
}

// NewStockRepository crea el repositorio sobre un pool o una transacción.
func NewStockRepository(db Querier) *StockRepository {
	return &StockRepository{db: db}
}

const stockLineColumns = `location_id, product_id, item_kind, quantity, status, updated_at`

func scanStockLine(row pgx.Row) (*entity.StockLine, error) {
	var line entity.StockLine
	err := row.Scan(
		&line.LocationID,
		&line.ProductID,
		&line.ItemKind,
		&line.Quantity,
		&line.Status,
		&line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan stock line: %w", err)
	}
	return &line, nil
}

// Get devuelve la línea o nil si no existe.
func (r *StockRepository) Get(locationID, productID string) (*entity.StockLine, error) {
	query := `SELECT ` + stockLineColumns + ` FROM stock_lines WHERE location_id = $1 AND product_id = $2`
	return scanStockLine(r.db.QueryRow(context.Background(), query, locationID, productID))
}

// GetForUpdate bloquea la fila con SELECT FOR UPDATE. Solo tiene sentido
// dentro de una transacción; el lock se libera en Commit/Rollback.
func (r *StockRepository) GetForUpdate(locationID, productID string) (*entity.StockLine, error) {
	query := `SELECT ` + stockLineColumns + ` FROM stock_lines WHERE location_id = $1 AND product_id = $2 FOR UPDATE`
	return scanStockLine(r.db.QueryRow(context.Background(), query, locationID, productID))
}

// UpsertDelta suma delta a la cantidad, creando la fila si no existe.
// statusOverride fija el estado de la línea; nil lo deja como está (o como
// llega en el INSERT para filas nuevas, con status vacío).
func (r *StockRepository) UpsertDelta(locationID, productID, itemKind string, delta int64, statusOverride *string) error {
	ctx := context.Background()
	now := time.Now()

	if statusOverride != nil {
		query := `
			INSERT INTO stock_lines (location_id, product_id, item_kind, quantity, status, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (location_id, product_id)
			DO UPDATE SET quantity = stock_lines.quantity + $4, status = $5, updated_at = $6`
		if _, err := r.db.Exec(ctx, query, locationID, productID, itemKind, delta, *statusOverride, now); err != nil {
			return fmt.Errorf("upsert stock line: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO stock_lines (location_id, product_id, item_kind, quantity, status, updated_at)
		VALUES ($1, $2, $3, $4, '', $5)
		ON CONFLICT (location_id, product_id)
		DO UPDATE SET quantity = stock_lines.quantity + $4, updated_at = $5`
	if _, err := r.db.Exec(ctx, query, locationID, productID, itemKind, delta, now); err != nil {
		return fmt.Errorf("upsert stock line: %w", err)
	}
	return nil
}

// Delete elimina la línea.
func (r *StockRepository) Delete(locationID, productID string) error {
	query := `DELETE FROM stock_lines WHERE location_id = $1 AND product_id = $2`
	if _, err := r.db.Exec(context.Background(), query, locationID, productID); err != nil {
		return fmt.Errorf("delete stock line: %w", err)
	}
	return nil
}

// List devuelve la página de líneas enriquecidas y el total sin paginar.
func (r *StockRepository) List(f repository.StockFilters) ([]*repository.StockLineView, int, error) {
	ctx := context.Background()

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.LocationID != "" {
		conds = append(conds, "s.location_id = "+arg(f.LocationID))
	}
	if f.ItemKind != "" {
		conds = append(conds, "s.item_kind = "+arg(f.ItemKind))
	}
	if f.ProductType != "" {
		conds = append(conds, "p.type = "+arg(f.ProductType))
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		conds = append(conds, fmt.Sprintf("(p.name ILIKE %s OR p.brand ILIKE %s OR p.model ILIKE %s)",
			arg(pattern), arg(pattern), arg(pattern)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM stock_lines s
		JOIN products p ON p.id = s.product_id` + where
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock lines: %w", err)
	}

	query := `
		SELECT s.location_id, s.product_id, s.item_kind, s.quantity, s.status, s.updated_at,
		       l.name, p.name, p.brand, p.model, p.type
		FROM stock_lines s
		JOIN products p ON p.id = s.product_id
		JOIN locations l ON l.id = s.location_id` + where + `
		ORDER BY l.name, p.name`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock lines: %w", err)
	}
	defer rows.Close()

	var views []*repository.StockLineView
	for rows.Next() {
		var v repository.StockLineView
		err := rows.Scan(
			&v.LocationID, &v.ProductID, &v.ItemKind, &v.Quantity, &v.Status, &v.UpdatedAt,
			&v.LocationName, &v.ProductName, &v.Brand, &v.Model, &v.ProductType,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock line view: %w", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate stock lines: %w", err)
	}
	return views, total, nil
}

// Summary devuelve conteos agregados; locationID vacío cubre todas las ubicaciones.
func (r *StockRepository) Summary(locationID string) (*repository.StockSummary, error) {
	ctx := context.Background()

	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COUNT(*) FILTER (WHERE item_kind = 'BULK'),
		       COUNT(*) FILTER (WHERE item_kind = 'DEVICE')
		FROM stock_lines`
	var args []any
	if locationID != "" {
		query += ` WHERE location_id = $1`
		args = append(args, locationID)
	}

	var s repository.StockSummary
	err := r.db.QueryRow(ctx, query, args...).Scan(&s.TotalLines, &s.TotalQuantity, &s.BulkLines, &s.DeviceLines)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	return &s, nil
}

// TotalQuantity suma la cantidad de un producto en todas las ubicaciones.
func (r *StockRepository) TotalQuantity(productID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_lines WHERE product_id = $1`
	var total int64
	if err := r.db.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total quantity: %w", err)
	}
	return total, nil
}
