package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medstock-api/internal/application/dto"
	"github.com/jhoicas/medstock-api/internal/domain"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// Acciones de revisión.
const (
	ReviewActionApprove = "APPROVE"
	ReviewActionReject  = "REJECT"
)

// RequestUseCase gestiona el ciclo de vida de las solicitudes de transferencia:
// creación por empleados, listado con alcance por rol y revisión administrativa.
// La aprobación ejecuta el movimiento en la misma transacción que el cambio de
// estado, de modo que una solicitud COMPLETED implica un movimiento aplicado.
type RequestUseCase struct {
	txRunner     TxRunner
	availability *AvailabilityUseCase
	requestRepo  repository.TransferRequestRepository
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
}

// NewRequestUseCase construye el caso de uso.
func NewRequestUseCase(
	txRunner TxRunner,
	availability *AvailabilityUseCase,
	requestRepo repository.TransferRequestRepository,
	locationRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *RequestUseCase {
	return &RequestUseCase{
		txRunner:     txRunner,
		availability: availability,
		requestRepo:  requestRepo,
		locationRepo: locationRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
	}
}

// Create registra una solicitud en PENDING. No exige que el stock alcance hoy
// (puede llegar antes de la revisión), pero adjunta el informe de
// disponibilidad como advertencia temprana, sin bloquear.
func (uc *RequestUseCase) Create(ctx context.Context, requesterID string, in dto.CreateTransferRequestRequest) (*entity.TransferRequest, *dto.AvailabilityReport, error) {
	requester, err := uc.userRepo.GetByID(requesterID)
	if err != nil {
		return nil, nil, err
	}
	if requester == nil {
		return nil, nil, domain.ErrUserNotFound
	}

	toLocationID := in.ToLocationID
	if toLocationID == "" {
		// Destino por defecto: la ubicación asignada al solicitante.
		if requester.StockLocationID == nil {
			return nil, nil, domain.ErrInvalidInput
		}
		toLocationID = *requester.StockLocationID
	}

	if in.FromLocationID == "" || in.ProductID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.FromLocationID == toLocationID {
		return nil, nil, domain.ErrSameLocation
	}
	if strings.TrimSpace(in.Reason) == "" || !entity.IsValidUrgency(in.Urgency) {
		return nil, nil, domain.ErrInvalidInput
	}

	for _, id := range []string{in.FromLocationID, toLocationID} {
		location, err := uc.locationRepo.GetByID(id)
		if err != nil {
			return nil, nil, err
		}
		if location == nil || !location.IsActive {
			return nil, nil, domain.ErrUnknownItem
		}
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrUnknownItem
	}
	if in.RequestedQuantity <= 0 {
		return nil, nil, domain.ErrInvalidQuantity
	}
	if product.ItemKind == entity.ItemKindDevice && in.RequestedQuantity != 1 {
		return nil, nil, domain.ErrInvalidQuantity
	}

	code, err := uc.requestRepo.NextTransferCode()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	req := &entity.TransferRequest{
		ID:                uuid.New().String(),
		TransferCode:      code,
		FromLocationID:    in.FromLocationID,
		ToLocationID:      toLocationID,
		ProductID:         in.ProductID,
		ItemKind:          product.ItemKind,
		RequestedQuantity: in.RequestedQuantity,
		Reason:            strings.TrimSpace(in.Reason),
		Urgency:           in.Urgency,
		Status:            entity.RequestStatusPending,
		RequestedByID:     requesterID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.requestRepo.Create(req); err != nil {
		return nil, nil, err
	}

	// Advertencia no vinculante; un fallo aquí no invalida la solicitud creada.
	warning, _ := uc.availability.Check(ctx, dto.AvailabilityRequest{
		FromLocationID: in.FromLocationID,
		ProductID:      in.ProductID,
		ItemKind:       product.ItemKind,
		Quantity:       in.RequestedQuantity,
	})

	return req, warning, nil
}

// Review aprueba o rechaza una solicitud PENDING. El rechazo exige notas.
// La aprobación repite la comprobación de disponibilidad dentro de la
// transacción: si ya no alcanza, toda la revisión falla y la solicitud
// permanece PENDING para reintentar o rechazar.
func (uc *RequestUseCase) Review(ctx context.Context, requestID, action, reviewerID, notes string) (*entity.TransferRequest, error) {
	if action != ReviewActionApprove && action != ReviewActionReject {
		return nil, domain.ErrInvalidInput
	}
	if action == ReviewActionReject && strings.TrimSpace(notes) == "" {
		return nil, domain.ErrMissingRejectionNotes
	}

	reviewer, err := uc.userRepo.GetByID(reviewerID)
	if err != nil {
		return nil, err
	}
	if reviewer == nil {
		return nil, domain.ErrUserNotFound
	}

	var reviewed *entity.TransferRequest
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		recordRepo repository.TransferRecordRepository,
		requestRepo repository.TransferRequestRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la solicitud: dos revisiones concurrentes se serializan y la
		// segunda ve el estado ya cambiado.
		req, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.RequestStatusPending {
			return domain.ErrAlreadyReviewed
		}

		now := time.Now()
		req.ReviewedByID = &reviewerID
		req.ReviewedAt = &now
		req.ReviewNotes = strings.TrimSpace(notes)

		if action == ReviewActionReject {
			req.Status = entity.RequestStatusRejected
			req.UpdatedAt = now
			if err := requestRepo.UpdateReview(req); err != nil {
				return err
			}
			reviewed = req
			return nil
		}

		// Aprobación: ejecutar el movimiento en esta misma transacción. El
		// registro nace verificado por el revisor, con confirmación de envío del
		// admin y de recepción del solicitante.
		_, err = executeInTx(stockRepo, recordRepo, productRepo, ExecuteTransferInput{
			FromLocationID: req.FromLocationID,
			ToLocationID:   req.ToLocationID,
			ProductID:      req.ProductID,
			ItemKind:       req.ItemKind,
			Quantity:       req.RequestedQuantity,
			ActorID:        reviewerID,
			ActorRole:      reviewer.Role,
			Notes:          fmt.Sprintf("Transferencia aprobada desde la solicitud %s: %s", req.TransferCode, req.Reason),
			SentByID:       &reviewerID,
			ReceivedByID:   &req.RequestedByID,
			markVerified:   true,
		}, now)
		if err != nil {
			return err
		}

		req.Status = entity.RequestStatusCompleted
		req.UpdatedAt = now
		if err := requestRepo.UpdateReview(req); err != nil {
			return err
		}
		reviewed = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

// List devuelve las solicitudes visibles para el actor: los admins ven todas,
// los empleados solo las suyas o las destinadas a su ubicación.
func (uc *RequestUseCase) List(ctx context.Context, actorID string, f repository.RequestFilters) ([]*repository.TransferRequestView, int, *repository.RequestSummary, error) {
	actor, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return nil, 0, nil, err
	}
	if actor == nil {
		return nil, 0, nil, domain.ErrUserNotFound
	}
	if actor.Role != entity.RoleAdmin {
		f.ForUserID = actor.ID
		if actor.StockLocationID != nil {
			f.ForLocationID = *actor.StockLocationID
		}
	}
	return uc.requestRepo.List(f)
}

// GetByID devuelve una solicitud, aplicando el mismo alcance por rol que List.
func (uc *RequestUseCase) GetByID(ctx context.Context, actorID, requestID string) (*entity.TransferRequest, error) {
	actor, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}
	req, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role != entity.RoleAdmin && req.RequestedByID != actor.ID {
		if actor.StockLocationID == nil || *actor.StockLocationID != req.ToLocationID {
			return nil, domain.ErrForbidden
		}
	}
	return req, nil
}
