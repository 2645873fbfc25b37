package stock

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/medstock-api/internal/application/dto"
	"github.com/jhoicas/medstock-api/internal/domain"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
	"github.com/jhoicas/medstock-api/pkg/cache"
	"github.com/jhoicas/medstock-api/pkg/logger"
)

// TTL del resumen de inventario en cache. Las vistas toleran unos segundos de
// desfase; el libro de stock en sí nunca se lee desde cache.
const summaryCacheTTL = 30 * time.Second

// InventoryUseCase vistas de solo lectura sobre el libro de stock y el
// historial de transferencias. Nunca muta el libro.
type InventoryUseCase struct {
	stockRepo  repository.StockRepository
	recordRepo repository.TransferRecordRepository
	cache      cache.Client
	slips      SlipGenerator
	log        *logger.Logger
}

// NewInventoryUseCase construye el caso de uso. cache puede ser nil (sin Redis,
// el resumen se calcula siempre contra la BD).
func NewInventoryUseCase(
	stockRepo repository.StockRepository,
	recordRepo repository.TransferRecordRepository,
	cacheClient cache.Client,
	slips SlipGenerator,
	log *logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{
		stockRepo:  stockRepo,
		recordRepo: recordRepo,
		cache:      cacheClient,
		slips:      slips,
		log:        log,
	}
}

// ListStock devuelve la página de líneas de stock con el resumen agregado.
func (uc *InventoryUseCase) ListStock(ctx context.Context, f repository.StockFilters, page dto.PageRequest) (*dto.ListStockResponse, error) {
	page.DefaultPage()
	f.Limit = page.Limit
	f.Offset = page.Offset()

	lines, total, err := uc.stockRepo.List(f)
	if err != nil {
		return nil, err
	}

	summary, err := uc.summaryFor(ctx, f.LocationID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StockLineDTO, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.StockLineDTO{
			LocationID:   l.LocationID,
			LocationName: l.LocationName,
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			Brand:        l.Brand,
			Model:        l.Model,
			ProductType:  l.ProductType,
			ItemKind:     l.ItemKind,
			Quantity:     l.Quantity,
			Status:       l.Status,
			UpdatedAt:    l.UpdatedAt,
		})
	}

	return &dto.ListStockResponse{
		Items:      items,
		Pagination: dto.NewPageResponse(page, total),
		Summary: dto.StockSummaryDTO{
			TotalLines:    summary.TotalLines,
			TotalQuantity: summary.TotalQuantity,
			BulkLines:     summary.BulkLines,
			DeviceLines:   summary.DeviceLines,
		},
	}, nil
}

// summaryFor lee el resumen desde Redis y cae a la BD en cache miss. Los fallos
// del cache solo se registran: el inventario no depende de Redis.
func (uc *InventoryUseCase) summaryFor(ctx context.Context, locationID string) (*repository.StockSummary, error) {
	key := "stock:summary:" + locationID
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, key); err == nil {
			var s repository.StockSummary
			if err := json.Unmarshal([]byte(raw), &s); err == nil {
				return &s, nil
			}
		} else if err != cache.ErrCacheMiss && uc.log != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("cache de inventario no disponible")
		}
	}

	summary, err := uc.stockRepo.Summary(locationID)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			_ = uc.cache.Set(ctx, key, string(raw), summaryCacheTTL)
		}
	}
	return summary, nil
}

// ListTransferHistory devuelve el historial paginado de transferencias.
func (uc *InventoryUseCase) ListTransferHistory(ctx context.Context, f repository.TransferFilters, page dto.PageRequest) (*dto.ListTransfersResponse, error) {
	page.DefaultPage()
	f.Limit = page.Limit
	f.Offset = page.Offset()

	records, total, err := uc.recordRepo.List(f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferRecordDTO, 0, len(records))
	for _, r := range records {
		items = append(items, toTransferRecordDTO(r))
	}
	return &dto.ListTransfersResponse{
		Items:      items,
		Pagination: dto.NewPageResponse(page, total),
	}, nil
}

// GetTransfer devuelve el detalle de un registro del historial.
func (uc *InventoryUseCase) GetTransfer(ctx context.Context, id string) (*dto.TransferRecordDTO, error) {
	view, err := uc.recordRepo.GetView(id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	d := toTransferRecordDTO(view)
	return &d, nil
}

// TransferSlipPDF genera el comprobante imprimible de un registro.
func (uc *InventoryUseCase) TransferSlipPDF(ctx context.Context, id string) ([]byte, error) {
	view, err := uc.recordRepo.GetView(id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	return uc.slips.GenerateTransferSlip(ctx, view)
}

func toTransferRecordDTO(r *repository.TransferRecordView) dto.TransferRecordDTO {
	return dto.TransferRecordDTO{
		ID:                r.ID,
		FromLocationID:    r.FromLocationID,
		FromLocationName:  r.FromLocationName,
		ToLocationID:      r.ToLocationID,
		ToLocationName:    r.ToLocationName,
		ProductID:         r.ProductID,
		ProductName:       r.ProductName,
		ItemKind:          r.ItemKind,
		Quantity:          r.Quantity,
		NewStatus:         r.NewStatus,
		Notes:             r.Notes,
		TransferredByID:   r.TransferredByID,
		TransferredByName: r.TransferredByName,
		TransferredByRole: r.TransferredByRole,
		SentByID:          r.SentByID,
		ReceivedByID:      r.ReceivedByID,
		TransferDate:      r.TransferDate,
		IsVerified:        r.IsVerified,
		VerifiedByID:      r.VerifiedByID,
		VerifiedByName:    r.VerifiedByName,
		VerificationDate:  r.VerificationDate,
	}
}
