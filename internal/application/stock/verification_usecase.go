package stock

import (
	"context"
	"time"

	"github.com/jhoicas/medstock-api/internal/domain"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// VerificationUseCase aplica el control de confianza a posteriori sobre las
// transferencias ejecutadas directamente por no-admins. El veredicto es solo
// auditoría: nunca revierte el movimiento ya aplicado; un rechazo marca el
// registro para investigación.
type VerificationUseCase struct {
	txRunner   TxRunner
	recordRepo repository.TransferRecordRepository
}

// NewVerificationUseCase construye el caso de uso.
func NewVerificationUseCase(txRunner TxRunner, recordRepo repository.TransferRecordRepository) *VerificationUseCase {
	return &VerificationUseCase{txRunner: txRunner, recordRepo: recordRepo}
}

// Verify fija el veredicto de un registro pendiente, exactamente una vez.
//   - Registros de admins no entran en la cola: ErrVerificationNotRequired.
//   - Registros ya verificados: ErrAlreadyVerified.
func (uc *VerificationUseCase) Verify(ctx context.Context, transferID string, approved bool, adminID string) (*entity.TransferRecord, error) {
	var verified *entity.TransferRecord
	err := uc.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		recordRepo repository.TransferRecordRepository,
		_ repository.TransferRequestRepository,
		_ repository.ProductRepository,
	) error {
		rec, err := recordRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.TransferredByRole == entity.RoleAdmin && rec.IsVerified == nil {
			return domain.ErrVerificationNotRequired
		}
		if rec.IsVerified != nil {
			return domain.ErrAlreadyVerified
		}

		now := time.Now()
		if err := recordRepo.SetVerification(rec.ID, approved, adminID, now); err != nil {
			return err
		}
		rec.IsVerified = &approved
		rec.VerifiedByID = &adminID
		rec.VerificationDate = &now
		verified = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return verified, nil
}

// ListPending devuelve los registros aún sin veredicto para el panel del admin.
func (uc *VerificationUseCase) ListPending(ctx context.Context, f repository.TransferFilters) ([]*repository.TransferRecordView, int, error) {
	f.PendingOnly = true
	return uc.recordRepo.List(f)
}
