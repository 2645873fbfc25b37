package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// Ensure ProductRepository implements the interface.
var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación PostgreSQL del catálogo de productos.
type ProductRepository struct {
	db Querier
}

// NewProductRepository crea el repositorio sobre un pool o una transacción.
func NewProductRepository(db Querier) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, brand, model, item_kind, type, serial_number, status,
	purchase_price, selling_price, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Model, &p.ItemKind, &p.Type,
		&p.SerialNumber, &p.Status, &p.PurchasePrice, &p.SellingPrice,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

// Create inserta un producto en el catálogo.
func (r *ProductRepository) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(context.Background(), query,
		product.ID, product.Name, product.Brand, product.Model, product.ItemKind,
		product.Type, product.SerialNumber, product.Status,
		product.PurchasePrice, product.SellingPrice, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert product: número de serie duplicado: %w", err)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID devuelve el producto o nil si no existe.
func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRow(context.Background(), query, id))
}

// Update actualiza los campos editables (tipo y clase son inmutables).
func (r *ProductRepository) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, brand = $3, model = $4, serial_number = $5, status = $6,
		    purchase_price = $7, selling_price = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.db.Exec(context.Background(), query,
		product.ID, product.Name, product.Brand, product.Model,
		product.SerialNumber, product.Status,
		product.PurchasePrice, product.SellingPrice, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update product: producto %s no encontrado", product.ID)
	}
	return nil
}

// UpdateStatus cambia solo el estado del dispositivo.
func (r *ProductRepository) UpdateStatus(id, status string) error {
	query := `UPDATE products SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update product status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update product status: producto %s no encontrado", id)
	}
	return nil
}

// List devuelve la página del catálogo y el total sin paginar.
func (r *ProductRepository) List(f repository.ProductFilters) ([]*entity.Product, int, error) {
	ctx := context.Background()

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ItemKind != "" {
		conds = append(conds, "item_kind = "+arg(f.ItemKind))
	}
	if f.Type != "" {
		conds = append(conds, "type = "+arg(f.Type))
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR brand ILIKE %s OR model ILIKE %s OR serial_number ILIKE %s)",
			arg(pattern), arg(pattern), arg(pattern), arg(pattern)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY name`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Brand, &p.Model, &p.ItemKind, &p.Type,
			&p.SerialNumber, &p.Status, &p.PurchasePrice, &p.SellingPrice,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}
	return products, total, nil
}
