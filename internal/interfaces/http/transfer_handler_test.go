package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

// Las respuestas de creación y verificación pasan por el DTO: mismos nombres de
// campo en el wire que el historial y el detalle.
func TestToTransferRecordResponse_MismoContratoQueElHistorial(t *testing.T) {
	now := time.Now()
	verified := true
	adminID := "user-admin"
	newStatus := "MAINTENANCE"

	rec := &entity.TransferRecord{
		ID:                "rec-1",
		FromLocationID:    "loc-central",
		ToLocationID:      "loc-sucursal",
		ProductID:         "prod-concentrador",
		ItemKind:          entity.ItemKindDevice,
		Quantity:          1,
		NewStatus:         &newStatus,
		Notes:             "traslado programado",
		TransferredByID:   adminID,
		TransferredByRole: entity.RoleAdmin,
		TransferDate:      now,
		IsVerified:        &verified,
		VerifiedByID:      &adminID,
		VerificationDate:  &now,
	}

	d := toTransferRecordResponse(rec)

	assert.Equal(t, rec.ID, d.ID)
	assert.Equal(t, rec.FromLocationID, d.FromLocationID)
	assert.Equal(t, rec.ToLocationID, d.ToLocationID)
	assert.Equal(t, rec.Quantity, d.Quantity)
	assert.Equal(t, rec.NewStatus, d.NewStatus)
	assert.Equal(t, rec.TransferredByRole, d.TransferredByRole)
	require.NotNil(t, d.IsVerified)
	assert.True(t, *d.IsVerified)
	assert.Equal(t, rec.VerifiedByID, d.VerifiedByID)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"from_location_id":"loc-central"`,
		"los nombres de campo del wire son los del DTO, no los de la entidad")
}

// Una transferencia directa recién creada serializa el veredicto pendiente de
// forma explícita.
func TestToTransferRecordResponse_PendienteSerializaVeredictoNulo(t *testing.T) {
	rec := &entity.TransferRecord{
		ID:                "rec-2",
		ItemKind:          entity.ItemKindBulk,
		Quantity:          4,
		TransferredByRole: entity.RoleEmployee,
		TransferDate:      time.Now(),
	}

	raw, err := json.Marshal(toTransferRecordResponse(rec))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"is_verified":null`)
}
