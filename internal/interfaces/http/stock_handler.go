package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medstock-api/internal/application/dto"
	"github.com/jhoicas/medstock-api/internal/application/stock"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// StockHandler vistas de disponibilidad e inventario (protegido).
type StockHandler struct {
	availability *stock.AvailabilityUseCase
	inventory    *stock.InventoryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(availability *stock.AvailabilityUseCase, inventory *stock.InventoryUseCase) *StockHandler {
	return &StockHandler{availability: availability, inventory: inventory}
}

// CheckAvailability godoc
// @Summary      Comprobar disponibilidad de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        from_location_id  query  string  true   "Ubicación origen"
// @Param        product_id        query  string  true   "Producto"
// @Param        quantity          query  int     true   "Cantidad pedida"
// @Success      200  {object}  dto.AvailabilityReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/availability [get]
func (h *StockHandler) CheckAvailability(c *fiber.Ctx) error {
	var in dto.AvailabilityRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	report, err := h.availability.Check(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(report)
}

// ListInventory godoc
// @Summary      Inventario actual por ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location_id   query  string  false  "Filtrar por ubicación"
// @Param        item_kind     query  string  false  "BULK o DEVICE"
// @Param        product_type  query  string  false  "Tipo de producto"
// @Param        search        query  string  false  "Nombre, marca o modelo"
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Tamaño"  default(10)
// @Success      200  {object}  dto.ListStockResponse
// @Router       /api/stock/inventory [get]
func (h *StockHandler) ListInventory(c *fiber.Ctx) error {
	f := repository.StockFilters{
		LocationID:  c.Query("location_id"),
		ItemKind:    c.Query("item_kind"),
		ProductType: c.Query("product_type"),
		Search:      c.Query("search"),
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	out, err := h.inventory.ListStock(c.Context(), f, page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
