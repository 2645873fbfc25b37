package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medstock-api/internal/application/dto"
	"github.com/jhoicas/medstock-api/internal/application/stock"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// RequestHandler solicitudes de transferencia: creación, listado con alcance por
// rol y revisión administrativa (protegido).
type RequestHandler struct {
	requests *stock.RequestUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(requests *stock.RequestUseCase) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// Create godoc
// @Summary      Crear solicitud de transferencia
// @Tags         transfer-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequestRequest  true  "Solicitud"
// @Success      201   {object}  dto.CreateTransferRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/transfer-requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, warning, err := h.requests.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateTransferRequestResponse{
		Request:      toTransferRequestDTO(req, nil),
		Availability: warning,
	})
}

// List godoc
// @Summary      Listar solicitudes de transferencia
// @Tags         transfer-requests
// @Security     Bearer
// @Produce      json
// @Param        status   query  string  false  "PENDING, APPROVED, REJECTED o COMPLETED"
// @Param        urgency  query  string  false  "LOW, MEDIUM o HIGH"
// @Param        search   query  string  false  "Producto, motivo o código"
// @Param        page     query  int     false  "Página"  default(1)
// @Param        limit    query  int     false  "Tamaño"  default(10)
// @Success      200  {object}  dto.ListTransferRequestsResponse
// @Router       /api/stock/transfer-requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	f := repository.RequestFilters{
		Status:  c.Query("status"),
		Urgency: c.Query("urgency"),
		Search:  c.Query("search"),
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.DefaultPage()
	f.Limit = page.Limit
	f.Offset = page.Offset()

	views, total, summary, err := h.requests.List(c.Context(), GetUserID(c), f)
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.TransferRequestDTO, 0, len(views))
	for _, v := range views {
		items = append(items, toTransferRequestDTO(&v.TransferRequest, v))
	}
	return c.JSON(dto.ListTransferRequestsResponse{
		Items:      items,
		Pagination: dto.NewPageResponse(page, total),
		Summary: dto.RequestSummaryDTO{
			Total:     summary.Total,
			Pending:   summary.Pending,
			Approved:  summary.Approved,
			Rejected:  summary.Rejected,
			Completed: summary.Completed,
		},
	})
}

// GetByID godoc
// @Summary      Detalle de una solicitud
// @Tags         transfer-requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.TransferRequestDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/transfer-requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	req, err := h.requests.GetByID(c.Context(), GetUserID(c), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toTransferRequestDTO(req, nil))
}

// Review godoc
// @Summary      Aprobar o rechazar una solicitud (solo admin)
// @Tags         transfer-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID de la solicitud"
// @Param        body  body  dto.ReviewTransferRequestRequest  true  "Acción y notas"
// @Success      200   {object}  dto.TransferRequestDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transfer-requests/{id}/review [put]
func (h *RequestHandler) Review(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ReviewTransferRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.requests.Review(c.Context(), id, in.Action, GetUserID(c), in.Notes)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toTransferRequestDTO(req, nil))
}

// toTransferRequestDTO mapea la entidad (y opcionalmente la vista con nombres) al DTO.
func toTransferRequestDTO(req *entity.TransferRequest, view *repository.TransferRequestView) dto.TransferRequestDTO {
	d := dto.TransferRequestDTO{
		ID:                req.ID,
		TransferCode:      req.TransferCode,
		FromLocationID:    req.FromLocationID,
		ToLocationID:      req.ToLocationID,
		ProductID:         req.ProductID,
		ItemKind:          req.ItemKind,
		RequestedQuantity: req.RequestedQuantity,
		Reason:            req.Reason,
		Urgency:           req.Urgency,
		Status:            req.Status,
		RequestedByID:     req.RequestedByID,
		ReviewedByID:      req.ReviewedByID,
		ReviewedAt:        req.ReviewedAt,
		ReviewNotes:       req.ReviewNotes,
		CreatedAt:         req.CreatedAt,
	}
	if view != nil {
		d.FromLocationName = view.FromLocationName
		d.ToLocationName = view.ToLocationName
		d.ProductName = view.ProductName
		d.RequestedByName = view.RequestedByName
		d.ReviewedByName = view.ReviewedByName
	}
	return d
}
