package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstock-api/internal/application/dto"
	"github.com/jhoicas/medstock-api/internal/domain"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

func newRequestUC(f *fixture) *RequestUseCase {
	return NewRequestUseCase(
		f.txRunner,
		newAvailabilityUC(f),
		f.requestRepo,
		f.locationRepo,
		f.productRepo,
		f.userRepo,
	)
}

func bulkRequest(qty int64) dto.CreateTransferRequestRequest {
	return dto.CreateTransferRequestRequest{
		FromLocationID:    locCentral,
		ProductID:         prodBulk,
		RequestedQuantity: qty,
		Reason:            "Reposición semanal de la sucursal",
		Urgency:           entity.UrgencyMedium,
	}
}

func TestRequestCreate_DestinoPorDefecto(t *testing.T) {
	f := newFixture()
	uc := newRequestUC(f)

	req, warning, err := uc.Create(context.Background(), userEmploye, bulkRequest(5))
	require.NoError(t, err)

	assert.Equal(t, locBranch, req.ToLocationID,
		"sin destino explícito se usa la ubicación asignada al solicitante")
	assert.Equal(t, entity.RequestStatusPending, req.Status)
	assert.Equal(t, "STR-0001", req.TransferCode)
	require.NotNil(t, warning)
	assert.True(t, warning.Available)

	// Crear la solicitud no reserva stock.
	assert.Equal(t, int64(10), f.quantityAt(locCentral, prodBulk))
}

func TestRequestCreate_CodigosSecuenciales(t *testing.T) {
	f := newFixture()
	uc := newRequestUC(f)

	first, _, err := uc.Create(context.Background(), userEmploye, bulkRequest(1))
	require.NoError(t, err)
	second, _, err := uc.Create(context.Background(), userEmploye, bulkRequest(2))
	require.NoError(t, err)

	assert.Equal(t, "STR-0001", first.TransferCode)
	assert.Equal(t, "STR-0002", second.TransferCode)
}

// El stock insuficiente NO bloquea la creación: puede llegar antes de la
// revisión. La advertencia viaja en la respuesta.
func TestRequestCreate_InsuficienteSoloAdvierte(t *testing.T) {
	f := newFixture()
	uc := newRequestUC(f)

	req, warning, err := uc.Create(context.Background(), userEmploye, bulkRequest(50))
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusPending, req.Status)
	require.NotNil(t, warning)
	assert.False(t, warning.Available)
	assert.Equal(t, ReasonInsufficientQuantity, warning.Reason)
}

func TestRequestCreate_Validaciones(t *testing.T) {
	f := newFixture()
	uc := newRequestUC(f)
	ctx := context.Background()

	in := bulkRequest(5)
	in.Reason = "   "
	_, _, err := uc.Create(ctx, userEmploye, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el motivo es obligatorio")

	in = bulkRequest(5)
	in.Urgency = "URGENTISIMO"
	_, _, err = uc.Create(ctx, userEmploye, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = bulkRequest(5)
	in.ToLocationID = locCentral // igual al origen
	_, _, err = uc.Create(ctx, userEmploye, in)
	assert.ErrorIs(t, err, domain.ErrSameLocation)

	in = bulkRequest(0)
	_, _, err = uc.Create(ctx, userEmploye, in)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	in = bulkRequest(5)
	in.ProductID = prodDevice
	in.RequestedQuantity = 3
	_, _, err = uc.Create(ctx, userEmploye, in)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "un dispositivo se pide de a uno")
}

func TestRequestCreate_DestinoDesconocidoOInactivo(t *testing.T) {
	f := newFixture()
	uc := newRequestUC(f)
	ctx := context.Background()

	in := bulkRequest(2)
	in.ToLocationID = "loc-fantasma"
	_, _, err := uc.Create(ctx, userEmploye, in)
	assert.ErrorIs(t, err, domain.ErrUnknownItem,
		"un destino inexistente no puede aceptar solicitudes")
	assert.Empty(t, f.store.requests)

	// El destino por defecto (la ubicación del solicitante) también se valida.
	f.store.locations[locBranch].IsActive = false
	_, _, err = uc.Create(ctx, userEmploye, bulkRequest(2))
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
	assert.Empty(t, f.store.requests)
}

func TestRequestCreate_SolicitanteSinUbicacionNiDestino(t *testing.T) {
	f := newFixture()
	f.store.users[userEmploye].StockLocationID = nil
	uc := newRequestUC(f)

	_, _, err := uc.Create(context.Background(), userEmploye, bulkRequest(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Revisión ─────────────────────────────────────────────────────────────────

func TestRequestReview_AprobarEjecutaElMovimiento(t *testing.T) {
	f := newFixture()
	uc := newRequestUC(f)
	ctx := context.Background()

	req, _, err := uc.Create(ctx, userEmploye, bulkRequest(4))
	require.NoError(t, err)

	reviewed, err := uc.Review(ctx, req.ID, ReviewActionApprove, userAdmin, "")
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusCompleted, reviewed.Status,
		"aprobación y ejecución son un solo paso atómico")
	require.NotNil(t, reviewed.ReviewedByID)
	assert.Equal(t, userAdmin, *reviewed.ReviewedByID)

	assert.Equal(t, int64(6), f.quantityAt(locCentral, prodBulk))
	assert.Equal(t, int64(4), f.quantityAt(locBranch, prodBulk))

	// El registro nace verificado por el revisor, con ambas confirmaciones.
	require.Len(t, f.store.records, 1)
	for _, rec := range f.store.records {
		require.NotNil(t, rec.IsVerified)
		assert.True(t, *rec.IsVerified)
		require.NotNil(t, rec.VerifiedByID)
		assert.Equal(t, userAdmin, *rec.VerifiedByID)
		require.NotNil(t, rec.SentByID)
		assert.Equal(t, userAdmin, *rec.SentByID)
		require.NotNil(t, rec.ReceivedByID)
		assert.Equal(t, userEmploye, *rec.ReceivedByID)
		assert.Contains(t, rec.Notes, req.TransferCode)
	}
}

func TestRequestReview_RechazoExigeNotas(t *testing.T) {
	f := newFixture()
	uc := newRequestUC(f)
	ctx := context.Background()

	req, _, err := uc.Create(ctx, userEmploye, bulkRequest(4))
	require.NoError(t, err)

	_, err = uc.Review(ctx, req.ID, ReviewActionReject, userAdmin, "  ")
	assert.ErrorIs(t, err, domain.ErrMissingRejectionNotes)

	reviewed, err := uc.Review(ctx, req.ID, ReviewActionReject, userAdmin, "Stock reservado para otra sucursal")
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusRejected, reviewed.Status)
	assert.Equal(t, "Stock reservado para otra sucursal", reviewed.ReviewNotes)
	assert.Equal(t, int64(10), f.quantityAt(locCentral, prodBulk),
		"el rechazo no toca el stock")
	assert.Empty(t, f.store.records)
}

func TestRequestReview_SegundaRevisionFalla(t *testing.T) {
	f := newFixture()
	uc := newRequestUC(f)
	ctx := context.Background()

	req, _, err := uc.Create(ctx, userEmploye, bulkRequest(4))
	require.NoError(t, err)

	_, err = uc.Review(ctx, req.ID, ReviewActionApprove, userAdmin, "")
	require.NoError(t, err)

	_, err = uc.Review(ctx, req.ID, ReviewActionApprove, userAdmin, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)

	_, err = uc.Review(ctx, req.ID, ReviewActionReject, userAdmin, "tarde")
	assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)

	assert.Equal(t, int64(6), f.quantityAt(locCentral, prodBulk),
		"la segunda revisión no debe mover stock otra vez")
}

// El stock pudo agotarse entre la creación y la revisión: la aprobación falla
// completa y la solicitud queda PENDING para reintentar o rechazar.
func TestRequestReview_AprobarSinStockDejaPendiente(t *testing.T) {
	f := newFixture()
	uc := newRequestUC(f)
	ctx := context.Background()

	req, _, err := uc.Create(ctx, userEmploye, bulkRequest(8))
	require.NoError(t, err)

	f.store.stock[stockKey(locCentral, prodBulk)].Quantity = 3

	_, err = uc.Review(ctx, req.ID, ReviewActionApprove, userAdmin, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	stored := f.store.requests[req.ID]
	assert.Equal(t, entity.RequestStatusPending, stored.Status,
		"la solicitud debe seguir PENDING tras el fallo")
	assert.Nil(t, stored.ReviewedByID)
	assert.Equal(t, int64(3), f.quantityAt(locCentral, prodBulk))
	assert.Empty(t, f.store.records)
}

func TestRequestReview_AccionInvalida(t *testing.T) {
	f := newFixture()
	uc := newRequestUC(f)

	_, err := uc.Review(context.Background(), "req-x", "MAYBE", userAdmin, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRequestReview_SolicitudInexistente(t *testing.T) {
	f := newFixture()
	uc := newRequestUC(f)

	_, err := uc.Review(context.Background(), "req-fantasma", ReviewActionApprove, userAdmin, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Alcance por rol ──────────────────────────────────────────────────────────

func TestRequestList_EmpleadoSoloVeLasSuyas(t *testing.T) {
	f := newFixture()
	uc := newRequestUC(f)
	ctx := context.Background()

	// Solicitud del empleado hacia su sucursal.
	mine, _, err := uc.Create(ctx, userEmploye, bulkRequest(2))
	require.NoError(t, err)

	// Solicitud de un tercero hacia otra ubicación.
	otherID := "user-otro"
	otherLoc := "loc-otra"
	f.store.locations[otherLoc] = &entity.Location{ID: otherLoc, Name: "Otra", IsActive: true}
	f.store.users[otherID] = &entity.User{
		ID: otherID, Email: "otro@medstock.test", Role: entity.RoleEmployee,
		StockLocationID: &otherLoc, IsActive: true,
	}
	foreign, _, err := uc.Create(ctx, otherID, bulkRequest(1))
	require.NoError(t, err)

	views, total, summary, err := uc.List(ctx, userEmploye, repository.RequestFilters{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, mine.ID, views[0].ID)
	assert.Equal(t, 1, summary.Pending)

	// El admin ve todo.
	_, adminTotal, _, err := uc.List(ctx, userAdmin, repository.RequestFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, adminTotal)

	// GetByID aplica el mismo alcance.
	_, err = uc.GetByID(ctx, userEmploye, foreign.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetByID(ctx, userAdmin, foreign.ID)
	assert.NoError(t, err)
}
