package dto

import "time"

// AvailabilityRequest query para GET /api/stock/availability.
type AvailabilityRequest struct {
	FromLocationID string `query:"from_location_id"`
	ProductID      string `query:"product_id"`
	ItemKind       string `query:"item_kind"`
	Quantity       int64  `query:"quantity"`
}

// AvailabilityReport resultado de la comprobación de disponibilidad.
// Es una lectura sin efectos: la comprobación vinculante se repite dentro de la
// transacción que ejecuta el movimiento.
type AvailabilityReport struct {
	Available         bool   `json:"available"`
	Reason            string `json:"reason,omitempty"`
	AvailableQuantity int64  `json:"available_quantity"`
}

// StockLineDTO línea de stock para la vista de inventario.
type StockLineDTO struct {
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_name"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Brand        string    `json:"brand,omitempty"`
	Model        string    `json:"model,omitempty"`
	ProductType  string    `json:"product_type"`
	ItemKind     string    `json:"item_kind"`
	Quantity     int64     `json:"quantity"`
	Status       string    `json:"status,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockSummaryDTO conteos agregados para la cabecera del inventario.
type StockSummaryDTO struct {
	TotalLines    int64 `json:"total_lines"`
	TotalQuantity int64 `json:"total_quantity"`
	BulkLines     int64 `json:"bulk_lines"`
	DeviceLines   int64 `json:"device_lines"`
}

// ListStockResponse respuesta paginada del inventario.
type ListStockResponse struct {
	Items      []StockLineDTO  `json:"items"`
	Pagination PageResponse    `json:"pagination"`
	Summary    StockSummaryDTO `json:"summary"`
}
