package repository

import "github.com/jhoicas/medstock-api/internal/domain/entity"

// StockFilters filtros para listar líneas de stock.
type StockFilters struct {
	LocationID  string
	ItemKind    string
	ProductType string
	Search      string // nombre, marca o modelo del producto
	Limit       int
	Offset      int
}

// StockLineView línea de stock enriquecida con datos de ubicación y producto
// para las vistas de inventario.
type StockLineView struct {
	entity.StockLine
	LocationName string
	ProductName  string
	Brand        string
	Model        string
	ProductType  string
}

// StockSummary conteos agregados para la cabecera de la vista de inventario.
type StockSummary struct {
	TotalLines    int64
	TotalQuantity int64
	BulkLines     int64
	DeviceLines   int64
}

// StockRepository define el puerto del libro de stock (fila por ubicación+producto).
// Las mutaciones solo se invocan desde el ejecutor de transferencias, dentro de
// una transacción; las lecturas son libres.
type StockRepository interface {
	// Get devuelve la línea o nil si no existe.
	Get(locationID, productID string) (*entity.StockLine, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(locationID, productID string) (*entity.StockLine, error)
	// UpsertDelta suma delta a la cantidad (creando la fila si no existe) y aplica
	// statusOverride si no es nil. delta puede ser negativo.
	UpsertDelta(locationID, productID, itemKind string, delta int64, statusOverride *string) error
	// Delete elimina la línea (dispositivo que abandona la ubicación, o BULK en cero).
	Delete(locationID, productID string) error
	// List devuelve la página de líneas y el total sin paginar.
	List(f StockFilters) ([]*StockLineView, int, error)
	// Summary devuelve conteos agregados; locationID vacío = todas las ubicaciones.
	Summary(locationID string) (*StockSummary, error)
	// TotalQuantity suma la cantidad de un producto en todas las ubicaciones.
	TotalQuantity(productID string) (int64, error)
}
