package stock

import (
	"context"
	"fmt"

	"github.com/jhoicas/medstock-api/internal/application/dto"
	"github.com/jhoicas/medstock-api/internal/domain"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// Motivos de indisponibilidad en el informe.
const (
	ReasonInsufficientQuantity = "INSUFFICIENT_QUANTITY"
	ReasonDeviceNotAtSource    = "DEVICE_NOT_AT_SOURCE"
	ReasonDeviceNotMovable     = "DEVICE_NOT_MOVABLE"
	ReasonInvalidQuantity      = "INVALID_QUANTITY"
)

// AvailabilityUseCase comprueba si una ubicación puede ceder la cantidad pedida
// de un ítem. Es una lectura pura: la comprobación vinculante se repite dentro
// de la transacción del ejecutor, sobre la fila bloqueada.
type AvailabilityUseCase struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(stockRepo repository.StockRepository, productRepo repository.ProductRepository) *AvailabilityUseCase {
	return &AvailabilityUseCase{stockRepo: stockRepo, productRepo: productRepo}
}

// Check evalúa la disponibilidad sin efectos secundarios.
// Devuelve ErrUnknownItem si el producto no existe; los demás fallos se
// expresan dentro del informe, no como error.
func (uc *AvailabilityUseCase) Check(ctx context.Context, in dto.AvailabilityRequest) (*dto.AvailabilityReport, error) {
	if in.FromLocationID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrUnknownItem
	}
	line, err := uc.stockRepo.Get(in.FromLocationID, in.ProductID)
	if err != nil {
		return nil, err
	}
	report := evaluate(line, product, in.Quantity)
	return &report, nil
}

// evaluate aplica las reglas de disponibilidad sobre una línea ya leída (o
// bloqueada, cuando se llama desde el ejecutor).
//   - BULK: disponible si quantity >= pedido; informa la cantidad real si no.
//   - DEVICE: pedido debe ser 1, la línea debe existir con quantity 1 y el
//     estado del dispositivo debe permitir el movimiento.
func evaluate(line *entity.StockLine, product *entity.Product, requested int64) dto.AvailabilityReport {
	var available int64
	if line != nil {
		available = line.Quantity
	}

	if requested <= 0 {
		return dto.AvailabilityReport{
			Available:         false,
			Reason:            ReasonInvalidQuantity,
			AvailableQuantity: available,
		}
	}

	if product.ItemKind == entity.ItemKindDevice {
		if requested != 1 {
			return dto.AvailabilityReport{
				Available:         false,
				Reason:            ReasonInvalidQuantity,
				AvailableQuantity: available,
			}
		}
		if line == nil || line.Quantity != 1 {
			return dto.AvailabilityReport{
				Available:         false,
				Reason:            ReasonDeviceNotAtSource,
				AvailableQuantity: 0,
			}
		}
		if !entity.IsMovableDeviceStatus(product.Status) {
			return dto.AvailabilityReport{
				Available:         false,
				Reason:            fmt.Sprintf("%s:%s", ReasonDeviceNotMovable, product.Status),
				AvailableQuantity: 0,
			}
		}
		return dto.AvailabilityReport{Available: true, AvailableQuantity: 1}
	}

	if available < requested {
		return dto.AvailabilityReport{
			Available:         false,
			Reason:            ReasonInsufficientQuantity,
			AvailableQuantity: available,
		}
	}
	return dto.AvailabilityReport{Available: true, AvailableQuantity: available}
}
