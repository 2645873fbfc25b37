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

// Ensure TransferRecordRepository implements the interface.
var _ repository.TransferRecordRepository = (*TransferRecordRepository)(nil)

// TransferRecordRepository implementación PostgreSQL del historial de
// transferencias. El historial es append-only: Create inserta, SetVerification
// fija el veredicto una vez y Delete solo existe para el rollback administrativo
// de registros no verificados.
type TransferRecordRepository struct {
	db Querier
}

// NewTransferRecordRepository crea el repositorio sobre un pool o una transacción.
func NewTransferRecordRepository(db Querier) *TransferRecordRepository {
	return &TransferRecordRepository{db: db}
}

const transferRecordColumns = `
	id, from_location_id, to_location_id, product_id, item_kind, quantity,
	new_status, notes, transferred_by_id, transferred_by_role, sent_by_id,
	received_by_id, transfer_date, is_verified, verified_by_id, verification_date,
	created_at`

func scanTransferRecord(row pgx.Row) (*entity.TransferRecord, error) {
	var rec entity.TransferRecord
	err := row.Scan(
		&rec.ID, &rec.FromLocationID, &rec.ToLocationID, &rec.ProductID,
		&rec.ItemKind, &rec.Quantity, &rec.NewStatus, &rec.Notes,
		&rec.TransferredByID, &rec.TransferredByRole, &rec.SentByID,
		&rec.ReceivedByID, &rec.TransferDate, &rec.IsVerified,
		&rec.VerifiedByID, &rec.VerificationDate, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transfer record: %w", err)
	}
	return &rec, nil
}

// Create inserta un registro de transferencia.
func (r *TransferRecordRepository) Create(rec *entity.TransferRecord) error {
	query := `
		INSERT INTO transfer_records (` + transferRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(context.Background(), query,
		rec.ID, rec.FromLocationID, rec.ToLocationID, rec.ProductID,
		rec.ItemKind, rec.Quantity, rec.NewStatus, rec.Notes,
		rec.TransferredByID, rec.TransferredByRole, rec.SentByID,
		rec.ReceivedByID, rec.TransferDate, rec.IsVerified,
		rec.VerifiedByID, rec.VerificationDate, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer record: %w", err)
	}
	return nil
}

// GetByID devuelve el registro o nil si no existe.
func (r *TransferRecordRepository) GetByID(id string) (*entity.TransferRecord, error) {
	query := `SELECT ` + transferRecordColumns + ` FROM transfer_records WHERE id = $1`
	return scanTransferRecord(r.db.QueryRow(context.Background(), query, id))
}

// GetForUpdate bloquea el registro para serializar verificación y rollback.
func (r *TransferRecordRepository) GetForUpdate(id string) (*entity.TransferRecord, error) {
	query := `SELECT ` + transferRecordColumns + ` FROM transfer_records WHERE id = $1 FOR UPDATE`
	return scanTransferRecord(r.db.QueryRow(context.Background(), query, id))
}

// SetVerification fija el veredicto de verificación.
func (r *TransferRecordRepository) SetVerification(id string, verified bool, verifiedByID string, at time.Time) error {
	query := `
		UPDATE transfer_records
		SET is_verified = $2, verified_by_id = $3, verification_date = $4
		WHERE id = $1`
	tag, err := r.db.Exec(context.Background(), query, id, verified, verifiedByID, at)
	if err != nil {
		return fmt.Errorf("set verification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set verification: registro %s no encontrado", id)
	}
	return nil
}

// Delete elimina un registro (solo rollback administrativo de no verificados).
func (r *TransferRecordRepository) Delete(id string) error {
	query := `DELETE FROM transfer_records WHERE id = $1`
	if _, err := r.db.Exec(context.Background(), query, id); err != nil {
		return fmt.Errorf("delete transfer record: %w", err)
	}
	return nil
}

const transferRecordViewQuery = `
	SELECT t.id, t.from_location_id, t.to_location_id, t.product_id, t.item_kind,
	       t.quantity, t.new_status, t.notes, t.transferred_by_id, t.transferred_by_role,
	       t.sent_by_id, t.received_by_id, t.transfer_date, t.is_verified,
	       t.verified_by_id, t.verification_date, t.created_at,
	       fl.name, tl.name, p.name,
	       u.first_name || ' ' || u.last_name,
	       COALESCE(v.first_name || ' ' || v.last_name, '')
	FROM transfer_records t
	JOIN locations fl ON fl.id = t.from_location_id
	JOIN locations tl ON tl.id = t.to_location_id
	JOIN products p ON p.id = t.product_id
	JOIN users u ON u.id = t.transferred_by_id
	LEFT JOIN users v ON v.id = t.verified_by_id`

func scanTransferRecordView(row pgx.Row) (*repository.TransferRecordView, error) {
	var v repository.TransferRecordView
	err := row.Scan(
		&v.ID, &v.FromLocationID, &v.ToLocationID, &v.ProductID, &v.ItemKind,
		&v.Quantity, &v.NewStatus, &v.Notes, &v.TransferredByID, &v.TransferredByRole,
		&v.SentByID, &v.ReceivedByID, &v.TransferDate, &v.IsVerified,
		&v.VerifiedByID, &v.VerificationDate, &v.CreatedAt,
		&v.FromLocationName, &v.ToLocationName, &v.ProductName,
		&v.TransferredByName, &v.VerifiedByName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transfer record view: %w", err)
	}
	return &v, nil
}

// GetView devuelve el registro enriquecido con nombres, o nil si no existe.
func (r *TransferRecordRepository) GetView(id string) (*repository.TransferRecordView, error) {
	query := transferRecordViewQuery + ` WHERE t.id = $1`
	return scanTransferRecordView(r.db.QueryRow(context.Background(), query, id))
}

// List devuelve la página del historial y el total sin paginar, del más
// reciente al más antiguo.
func (r *TransferRecordRepository) List(f repository.TransferFilters) ([]*repository.TransferRecordView, int, error) {
	ctx := context.Background()

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.LocationID != "" {
		p := arg(f.LocationID)
		conds = append(conds, fmt.Sprintf("(t.from_location_id = %s OR t.to_location_id = %s)", p, p))
	}
	if f.From != nil {
		conds = append(conds, "t.transfer_date >= "+arg(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "t.transfer_date <= "+arg(*f.To))
	}
	if f.Search != "" {
		conds = append(conds, "p.name ILIKE "+arg("%"+f.Search+"%"))
	}
	if f.PendingOnly {
		// Pendientes de verificación: ejecutadas por no-admins y sin veredicto.
		conds = append(conds, "t.is_verified IS NULL", "t.transferred_by_role <> 'ADMIN'")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM transfer_records t
		JOIN products p ON p.id = t.product_id` + where
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transfer records: %w", err)
	}

	query := transferRecordViewQuery + where + ` ORDER BY t.transfer_date DESC`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transfer records: %w", err)
	}
	defer rows.Close()

	var views []*repository.TransferRecordView
	for rows.Next() {
		v, err := scanTransferRecordView(rows)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transfer records: %w", err)
	}
	return views, total, nil
}
