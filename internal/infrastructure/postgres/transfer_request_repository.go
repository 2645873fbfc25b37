package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// Ensure TransferRequestRepository implements the interface.
var _ repository.TransferRequestRepository = (*TransferRequestRepository)(nil)

// TransferRequestRepository implementación PostgreSQL de las solicitudes de
// transferencia.
type TransferRequestRepository struct {
	db Querier
}

// NewTransferRequestRepository crea el repositorio sobre un pool o una transacción.
func NewTransferRequestRepository(db Querier) *TransferRequestRepository {
	return &TransferRequestRepository{db: db}
}

const transferRequestColumns = `
	id, transfer_code, from_location_id, to_location_id, product_id, item_kind,
	requested_quantity, reason, urgency, status, requested_by_id, reviewed_by_id,
	reviewed_at, review_notes, created_at, updated_at`

func scanTransferRequest(row pgx.Row) (*entity.TransferRequest, error) {
	var req entity.TransferRequest
	err := row.Scan(
		&req.ID, &req.TransferCode, &req.FromLocationID, &req.ToLocationID,
		&req.ProductID, &req.ItemKind, &req.RequestedQuantity, &req.Reason,
		&req.Urgency, &req.Status, &req.RequestedByID, &req.ReviewedByID,
		&req.ReviewedAt, &req.ReviewNotes, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transfer request: %w", err)
	}
	return &req, nil
}

// Create inserta una solicitud nueva.
func (r *TransferRequestRepository) Create(req *entity.TransferRequest) error {
	query := `
		INSERT INTO transfer_requests (` + transferRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.Exec(context.Background(), query,
		req.ID, req.TransferCode, req.FromLocationID, req.ToLocationID,
		req.ProductID, req.ItemKind, req.RequestedQuantity, req.Reason,
		req.Urgency, req.Status, req.RequestedByID, req.ReviewedByID,
		req.ReviewedAt, req.ReviewNotes, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert transfer request: código duplicado: %w", err)
		}
		return fmt.Errorf("insert transfer request: %w", err)
	}
	return nil
}

// GetByID devuelve la solicitud o nil si no existe.
func (r *TransferRequestRepository) GetByID(id string) (*entity.TransferRequest, error) {
	query := `SELECT ` + transferRequestColumns + ` FROM transfer_requests WHERE id = $1`
	return scanTransferRequest(r.db.QueryRow(context.Background(), query, id))
}

// GetForUpdate bloquea la solicitud para impedir revisiones concurrentes.
func (r *TransferRequestRepository) GetForUpdate(id string) (*entity.TransferRequest, error) {
	query := `SELECT ` + transferRequestColumns + ` FROM transfer_requests WHERE id = $1 FOR UPDATE`
	return scanTransferRequest(r.db.QueryRow(context.Background(), query, id))
}

// UpdateReview persiste el resultado de la revisión.
func (r *TransferRequestRepository) UpdateReview(req *entity.TransferRequest) error {
	query := `
		UPDATE transfer_requests
		SET status = $2, reviewed_by_id = $3, reviewed_at = $4, review_notes = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.db.Exec(context.Background(), query,
		req.ID, req.Status, req.ReviewedByID, req.ReviewedAt, req.ReviewNotes, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update review: solicitud %s no encontrada", req.ID)
	}
	return nil
}

// NextTransferCode genera el siguiente código secuencial STR-XXXX a partir del
// máximo existente, con reintentos por si otro proceso toma el mismo número
// entre la lectura y el chequeo.
func (r *TransferRequestRepository) NextTransferCode() (string, error) {
	ctx := context.Background()

	var last *string
	err := r.db.QueryRow(ctx,
		`SELECT MAX(transfer_code) FROM transfer_requests WHERE transfer_code LIKE 'STR-%'`,
	).Scan(&last)
	if err != nil {
		return "", fmt.Errorf("leer último código: %w", err)
	}

	next := 1
	if last != nil {
		if n, err := strconv.Atoi(strings.TrimPrefix(*last, "STR-")); err == nil {
			next = n + 1
		}
	}

	for attempt := 0; attempt < 5; attempt++ {
		code := fmt.Sprintf("STR-%04d", next)
		var exists bool
		err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM transfer_requests WHERE transfer_code = $1)`, code,
		).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("verificar código: %w", err)
		}
		if !exists {
			return code, nil
		}
		next++
	}
	return "", fmt.Errorf("no se pudo generar un código de transferencia único")
}

const transferRequestViewQuery = `
	SELECT q.id, q.transfer_code, q.from_location_id, q.to_location_id, q.product_id,
	       q.item_kind, q.requested_quantity, q.reason, q.urgency, q.status,
	       q.requested_by_id, q.reviewed_by_id, q.reviewed_at, q.review_notes,
	       q.created_at, q.updated_at,
	       fl.name, tl.name, p.name,
	       u.first_name || ' ' || u.last_name,
	       COALESCE(rv.first_name || ' ' || rv.last_name, '')
	FROM transfer_requests q
	JOIN locations fl ON fl.id = q.from_location_id
	JOIN locations tl ON tl.id = q.to_location_id
	JOIN products p ON p.id = q.product_id
	JOIN users u ON u.id = q.requested_by_id
	LEFT JOIN users rv ON rv.id = q.reviewed_by_id`

// List devuelve la página de solicitudes, el total y los conteos por estado.
// ForUserID/ForLocationID aplican el alcance por rol con semántica OR.
func (r *TransferRequestRepository) List(f repository.RequestFilters) ([]*repository.TransferRequestView, int, *repository.RequestSummary, error) {
	ctx := context.Background()

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ForUserID != "" || f.ForLocationID != "" {
		var scope []string
		if f.ForUserID != "" {
			scope = append(scope, "q.requested_by_id = "+arg(f.ForUserID))
		}
		if f.ForLocationID != "" {
			scope = append(scope, "q.to_location_id = "+arg(f.ForLocationID))
		}
		conds = append(conds, "("+strings.Join(scope, " OR ")+")")
	}
	if f.Status != "" {
		conds = append(conds, "q.status = "+arg(f.Status))
	}
	if f.Urgency != "" {
		conds = append(conds, "q.urgency = "+arg(f.Urgency))
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		conds = append(conds, fmt.Sprintf("(p.name ILIKE %s OR q.reason ILIKE %s OR q.transfer_code ILIKE %s)",
			arg(pattern), arg(pattern), arg(pattern)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	// El resumen por estado respeta el alcance y los filtros, igual que el total.
	summaryQuery := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE q.status = 'PENDING'),
		       COUNT(*) FILTER (WHERE q.status = 'APPROVED'),
		       COUNT(*) FILTER (WHERE q.status = 'REJECTED'),
		       COUNT(*) FILTER (WHERE q.status = 'COMPLETED')
		FROM transfer_requests q
		JOIN products p ON p.id = q.product_id` + where
	var summary repository.RequestSummary
	err := r.db.QueryRow(ctx, summaryQuery, args...).Scan(
		&summary.Total, &summary.Pending, &summary.Approved, &summary.Rejected, &summary.Completed,
	)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("resumen de solicitudes: %w", err)
	}

	query := transferRequestViewQuery + where + ` ORDER BY q.created_at DESC`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("list transfer requests: %w", err)
	}
	defer rows.Close()

	var views []*repository.TransferRequestView
	for rows.Next() {
		var v repository.TransferRequestView
		err := rows.Scan(
			&v.ID, &v.TransferCode, &v.FromLocationID, &v.ToLocationID, &v.ProductID,
			&v.ItemKind, &v.RequestedQuantity, &v.Reason, &v.Urgency, &v.Status,
			&v.RequestedByID, &v.ReviewedByID, &v.ReviewedAt, &v.ReviewNotes,
			&v.CreatedAt, &v.UpdatedAt,
			&v.FromLocationName, &v.ToLocationName, &v.ProductName,
			&v.RequestedByName, &v.ReviewedByName,
		)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("scan transfer request view: %w", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, nil, fmt.Errorf("iterate transfer requests: %w", err)
	}
	return views, summary.Total, &summary, nil
}
