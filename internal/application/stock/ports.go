package stock

import (
	"context"

	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la comprobación de disponibilidad
// y la mutación del libro de stock sean una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		recordRepo repository.TransferRecordRepository,
		requestRepo repository.TransferRequestRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// SlipGenerator genera el comprobante imprimible de un registro de
// transferencia.
type SlipGenerator interface {
	GenerateTransferSlip(ctx context.Context, transfer *repository.TransferRecordView) ([]byte, error)
}
