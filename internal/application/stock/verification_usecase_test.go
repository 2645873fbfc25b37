package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstock-api/internal/domain"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

func newVerificationUC(f *fixture) *VerificationUseCase {
	return NewVerificationUseCase(f.txRunner, f.recordRepo)
}

// executeAsEmployee ejecuta una transferencia directa como empleado, dejando un
// registro pendiente de verificación.
func executeAsEmployee(t *testing.T, f *fixture, qty int64) *entity.TransferRecord {
	t.Helper()
	uc := newTransferUC(f)
	in := bulkInput(qty)
	in.ActorID = userEmploye
	in.ActorRole = entity.RoleEmployee
	record, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	require.Nil(t, record.IsVerified)
	return record
}

func TestVerify_ApruebaUnaVez(t *testing.T) {
	f := newFixture()
	record := executeAsEmployee(t, f, 4)
	uc := newVerificationUC(f)

	verified, err := uc.Verify(context.Background(), record.ID, true, userAdmin)
	require.NoError(t, err)

	require.NotNil(t, verified.IsVerified)
	assert.True(t, *verified.IsVerified)
	require.NotNil(t, verified.VerifiedByID)
	assert.Equal(t, userAdmin, *verified.VerifiedByID)
	assert.NotNil(t, verified.VerificationDate)
}

func TestVerify_RechazoNoRevierteElMovimiento(t *testing.T) {
	f := newFixture()
	record := executeAsEmployee(t, f, 4)
	uc := newVerificationUC(f)

	verified, err := uc.Verify(context.Background(), record.ID, false, userAdmin)
	require.NoError(t, err)

	require.NotNil(t, verified.IsVerified)
	assert.False(t, *verified.IsVerified)

	// El veredicto es auditoría: el stock movido se queda donde está.
	assert.Equal(t, int64(6), f.quantityAt(locCentral, prodBulk))
	assert.Equal(t, int64(4), f.quantityAt(locBranch, prodBulk))
}

func TestVerify_SegundaVezFalla(t *testing.T) {
	f := newFixture()
	record := executeAsEmployee(t, f, 4)
	uc := newVerificationUC(f)
	ctx := context.Background()

	_, err := uc.Verify(ctx, record.ID, true, userAdmin)
	require.NoError(t, err)

	_, err = uc.Verify(ctx, record.ID, false, userAdmin)
	assert.ErrorIs(t, err, domain.ErrAlreadyVerified,
		"el veredicto se fija exactamente una vez")

	stored := f.store.records[record.ID]
	assert.True(t, *stored.IsVerified, "el primer veredicto debe prevalecer")
}

func TestVerify_RegistroDeAdminNoEntraEnLaCola(t *testing.T) {
	f := newFixture()
	transferUC := newTransferUC(f)
	record, err := transferUC.Execute(context.Background(), bulkInput(2))
	require.NoError(t, err)

	uc := newVerificationUC(f)
	_, err = uc.Verify(context.Background(), record.ID, true, userAdmin)
	assert.ErrorIs(t, err, domain.ErrVerificationNotRequired)
}

func TestVerify_RegistroInexistente(t *testing.T) {
	f := newFixture()
	uc := newVerificationUC(f)

	_, err := uc.Verify(context.Background(), "rec-fantasma", true, userAdmin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPending_SoloRegistrosSinVeredicto(t *testing.T) {
	f := newFixture()
	first := executeAsEmployee(t, f, 2)
	second := executeAsEmployee(t, f, 3)

	// Una transferencia de admin nunca aparece en la cola.
	transferUC := newTransferUC(f)
	_, err := transferUC.Execute(context.Background(), bulkInput(1))
	require.NoError(t, err)

	uc := newVerificationUC(f)
	ctx := context.Background()

	pending, total, err := uc.ListPending(ctx, repository.TransferFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	ids := make([]string, 0, len(pending))
	for _, v := range pending {
		ids = append(ids, v.ID)
	}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)

	// Tras verificar una, la cola se reduce.
	_, err = uc.Verify(ctx, first.ID, true, userAdmin)
	require.NoError(t, err)

	_, total, err = uc.ListPending(ctx, repository.TransferFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
