package entity

import "time"

// Estados de una línea de stock BULK.
const (
	StockStatusForSale  = "FOR_SALE"
	StockStatusForRent  = "FOR_RENT"
	StockStatusInRepair = "IN_REPAIR"
)

// StockLine es la fila atómica del libro de stock: cuánto hay de un ítem en una
// ubicación ahora mismo. Invariantes:
//   - Quantity >= 0 siempre.
//   - ItemKind DEVICE: Quantity ∈ {0,1} y el dispositivo existe en una sola ubicación.
//
// Solo el ejecutor de transferencias muta estas filas; el resto del sistema las lee.
type StockLine struct {
	LocationID string
	ProductID  string
	ItemKind   string // BULK | DEVICE
	Quantity   int64
	Status     string
	UpdatedAt  time.Time
}
