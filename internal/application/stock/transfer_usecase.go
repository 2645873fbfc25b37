package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medstock-api/internal/domain"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// TransferUseCase ejecuta movimientos de stock entre ubicaciones de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) sobre la línea origen
// y Commit/Rollback. Es el único punto de escritura del libro de stock.
type TransferUseCase struct {
	txRunner     TxRunner
	locationRepo repository.LocationRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, locationRepo repository.LocationRepository) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, locationRepo: locationRepo}
}

// ExecuteTransferInput entrada para ejecutar una transferencia.
// ActorID/ActorRole vienen explícitos: el núcleo no consulta sesión alguna.
type ExecuteTransferInput struct {
	FromLocationID string
	ToLocationID   string
	ProductID      string
	ItemKind       string
	Quantity       int64
	ActorID        string
	ActorRole      string
	Notes          string
	NewStatus      *string

	// Confirmaciones de cada lado; las fija el flujo de solicitudes al aprobar.
	SentByID     *string
	ReceivedByID *string

	// markVerified: el registro nace verificado por el actor (solo lo usa la
	// aprobación administrativa de solicitudes, dentro de este paquete).
	markVerified bool
}

// Execute valida la propuesta, repite la comprobación de disponibilidad sobre la
// fila bloqueada y aplica el movimiento completo en una transacción: resta en
// origen, suma en destino y añade el registro inmutable al historial.
// Cualquier fallo deja el libro de stock intacto.
func (uc *TransferUseCase) Execute(ctx context.Context, input ExecuteTransferInput) (*entity.TransferRecord, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	var record *entity.TransferRecord
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		recordRepo repository.TransferRecordRepository,
		_ repository.TransferRequestRepository,
		productRepo repository.ProductRepository,
	) error {
		rec, err := executeInTx(stockRepo, recordRepo, productRepo, input, time.Now())
		if err != nil {
			return err
		}
		record = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (uc *TransferUseCase) validate(input ExecuteTransferInput) error {
	if input.FromLocationID == "" || input.ToLocationID == "" || input.ProductID == "" || input.ActorID == "" {
		return domain.ErrInvalidInput
	}
	if input.FromLocationID == input.ToLocationID {
		return domain.ErrSameLocation
	}
	if input.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if input.ItemKind == entity.ItemKindDevice && input.Quantity != 1 {
		return domain.ErrInvalidQuantity
	}
	for _, id := range []string{input.FromLocationID, input.ToLocationID} {
		loc, err := uc.locationRepo.GetByID(id)
		if err != nil {
			return err
		}
		if loc == nil || !loc.IsActive {
			return domain.ErrUnknownItem
		}
	}
	return nil
}

// executeInTx es el núcleo atómico, compartido entre la transferencia directa y
// la aprobación de solicitudes (que ya corre dentro de su propia transacción).
// Los repositorios recibidos deben estar atados a la misma tx.
func executeInTx(
	stockRepo repository.StockRepository,
	recordRepo repository.TransferRecordRepository,
	productRepo repository.ProductRepository,
	input ExecuteTransferInput,
	now time.Time,
) (*entity.TransferRecord, error) {
	product, err := productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrUnknownItem
	}
	if input.ItemKind != "" && input.ItemKind != product.ItemKind {
		return nil, domain.ErrInvalidInput
	}

	// Bloquea la fila origen: a partir de aquí la comprobación y la mutación son
	// indivisibles frente a ejecuciones concurrentes sobre la misma línea.
	line, err := stockRepo.GetForUpdate(input.FromLocationID, input.ProductID)
	if err != nil {
		return nil, err
	}

	report := evaluate(line, product, input.Quantity)
	if !report.Available {
		switch {
		case report.Reason == ReasonInsufficientQuantity:
			return nil, domain.ErrInsufficientQuantity
		case report.Reason == ReasonInvalidQuantity:
			return nil, domain.ErrInvalidQuantity
		default:
			return nil, domain.ErrDeviceNotAtSource
		}
	}

	if product.ItemKind == entity.ItemKindDevice {
		if err := moveDevice(stockRepo, productRepo, product, input); err != nil {
			return nil, err
		}
	} else {
		if err := moveBulk(stockRepo, line, input); err != nil {
			return nil, err
		}
	}

	record := &entity.TransferRecord{
		ID:                uuid.New().String(),
		FromLocationID:    input.FromLocationID,
		ToLocationID:      input.ToLocationID,
		ProductID:         input.ProductID,
		ItemKind:          product.ItemKind,
		Quantity:          input.Quantity,
		NewStatus:         input.NewStatus,
		Notes:             input.Notes,
		TransferredByID:   input.ActorID,
		TransferredByRole: input.ActorRole,
		SentByID:          input.SentByID,
		ReceivedByID:      input.ReceivedByID,
		TransferDate:      now,
		CreatedAt:         now,
	}
	if input.markVerified {
		verified := true
		record.IsVerified = &verified
		record.VerifiedByID = &input.ActorID
		record.VerificationDate = &now
	}
	if err := recordRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// moveBulk resta en origen (eliminando la línea si queda en cero) y suma en
// destino. Si no se pidió estado nuevo, el destino hereda el estado del origen.
func moveBulk(stockRepo repository.StockRepository, line *entity.StockLine, input ExecuteTransferInput) error {
	if line.Quantity == input.Quantity {
		if err := stockRepo.Delete(input.FromLocationID, input.ProductID); err != nil {
			return err
		}
	} else {
		if err := stockRepo.UpsertDelta(input.FromLocationID, input.ProductID, entity.ItemKindBulk, -input.Quantity, nil); err != nil {
			return err
		}
	}
	statusOverride := input.NewStatus
	if statusOverride == nil && line.Status != "" {
		s := line.Status
		statusOverride = &s
	}
	return stockRepo.UpsertDelta(input.ToLocationID, input.ProductID, entity.ItemKindBulk, input.Quantity, statusOverride)
}

// moveDevice traslada la línea del dispositivo completa: desaparece del origen y
// nace en destino con cantidad 1 (exclusividad de ubicación). Si se pidió un
// estado nuevo válido, se aplica también al dispositivo.
func moveDevice(stockRepo repository.StockRepository, productRepo repository.ProductRepository, product *entity.Product, input ExecuteTransferInput) error {
	if err := stockRepo.Delete(input.FromLocationID, input.ProductID); err != nil {
		return err
	}
	status := product.Status
	if input.NewStatus != nil {
		if !entity.IsDeviceStatus(*input.NewStatus) {
			return domain.ErrInvalidInput
		}
		status = *input.NewStatus
		if err := productRepo.UpdateStatus(product.ID, status); err != nil {
			return err
		}
	}
	return stockRepo.UpsertDelta(input.ToLocationID, input.ProductID, entity.ItemKindDevice, 1, &status)
}

// Delete revierte y elimina una transferencia todavía no verificada con
// veredicto positivo (rollback administrativo). Repone las cantidades en una
// sola transacción y borra el registro del historial.
func (uc *TransferUseCase) Delete(ctx context.Context, transferID string) error {
	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
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
		if rec.IsVerified != nil && *rec.IsVerified {
			return domain.ErrTransferVerified
		}

		if rec.ItemKind == entity.ItemKindDevice {
			dest, err := stockRepo.GetForUpdate(rec.ToLocationID, rec.ProductID)
			if err != nil {
				return err
			}
			if dest == nil || dest.Quantity != 1 {
				// El dispositivo ya salió del destino: reponerlo en origen lo duplicaría.
				return domain.ErrConflict
			}
			if err := stockRepo.Delete(rec.ToLocationID, rec.ProductID); err != nil {
				return err
			}
			if err := stockRepo.UpsertDelta(rec.FromLocationID, rec.ProductID, entity.ItemKindDevice, 1, nil); err != nil {
				return err
			}
		} else {
			dest, err := stockRepo.GetForUpdate(rec.ToLocationID, rec.ProductID)
			if err != nil {
				return err
			}
			if dest == nil || dest.Quantity < rec.Quantity {
				// El stock destino ya se consumió: revertir dejaría cantidades negativas.
				return domain.ErrConflict
			}
			if dest.Quantity == rec.Quantity {
				if err := stockRepo.Delete(rec.ToLocationID, rec.ProductID); err != nil {
					return err
				}
			} else {
				if err := stockRepo.UpsertDelta(rec.ToLocationID, rec.ProductID, entity.ItemKindBulk, -rec.Quantity, nil); err != nil {
					return err
				}
			}
			if err := stockRepo.UpsertDelta(rec.FromLocationID, rec.ProductID, entity.ItemKindBulk, rec.Quantity, nil); err != nil {
				return err
			}
		}

		return recordRepo.Delete(rec.ID)
	})
}
