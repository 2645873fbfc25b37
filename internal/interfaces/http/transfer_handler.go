package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medstock-api/internal/application/dto"
	"github.com/jhoicas/medstock-api/internal/application/stock"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// TransferHandler ejecución directa, historial, comprobante, verificación y
// rollback administrativo de transferencias (protegido).
type TransferHandler struct {
	transfers    *stock.TransferUseCase
	verification *stock.VerificationUseCase
	inventory    *stock.InventoryUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(transfers *stock.TransferUseCase, verification *stock.VerificationUseCase, inventory *stock.InventoryUseCase) *TransferHandler {
	return &TransferHandler{transfers: transfers, verification: verification, inventory: inventory}
}

// Create godoc
// @Summary      Ejecutar una transferencia de stock
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Movimiento a ejecutar"
// @Success      201   {object}  dto.TransferRecordDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.transfers.Execute(c.Context(), stock.ExecuteTransferInput{
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		ProductID:      in.ProductID,
		ItemKind:       in.ItemKind,
		Quantity:       in.Quantity,
		ActorID:        GetUserID(c),
		ActorRole:      GetRole(c),
		Notes:          in.Notes,
		NewStatus:      in.NewStatus,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferRecordResponse(record))
}

// List godoc
// @Summary      Historial de transferencias
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Origen o destino"
// @Param        from         query  string  false  "Desde (RFC3339)"
// @Param        to           query  string  false  "Hasta (RFC3339)"
// @Param        search       query  string  false  "Nombre del producto"
// @Param        pending      query  bool    false  "Solo pendientes de verificación"
// @Param        page         query  int     false  "Página"  default(1)
// @Param        limit        query  int     false  "Tamaño"  default(10)
// @Success      200  {object}  dto.ListTransfersResponse
// @Router       /api/stock/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	f := repository.TransferFilters{
		LocationID:  c.Query("location_id"),
		Search:      c.Query("search"),
		PendingOnly: c.QueryBool("pending"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		f.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		f.To = &t
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	out, err := h.inventory.ListTransferHistory(c.Context(), f, page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una transferencia
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.TransferRecordDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.inventory.GetTransfer(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Slip godoc
// @Summary      Comprobante PDF de una transferencia
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/transfers/{id}/slip [get]
func (h *TransferHandler) Slip(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, err := h.inventory.TransferSlipPDF(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transferencia-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}

// Verify godoc
// @Summary      Verificar una transferencia pendiente (solo admin)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del registro"
// @Param        body  body  dto.VerifyTransferRequest  true  "Veredicto"
// @Success      200   {object}  dto.TransferRecordDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transfers/{id}/verify [post]
func (h *TransferHandler) Verify(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.VerifyTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.verification.Verify(c.Context(), id, in.Approved, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toTransferRecordResponse(record))
}

// ListPending godoc
// @Summary      Transferencias pendientes de verificación (solo admin)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Origen o destino"
// @Success      200  {object}  dto.ListTransfersResponse
// @Router       /api/stock/transfers/pending-verification [get]
func (h *TransferHandler) ListPending(c *fiber.Ctx) error {
	f := repository.TransferFilters{
		LocationID:  c.Query("location_id"),
		PendingOnly: true,
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	out, err := h.inventory.ListTransferHistory(c.Context(), f, page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Revertir y eliminar una transferencia no verificada (solo admin)
// @Tags         transfers
// @Security     Bearer
// @Param        id   path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/transfers/{id} [delete]
func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.transfers.Delete(c.Context(), id); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// toTransferRecordResponse mapea un registro recién creado o verificado al DTO
// de respuesta. Sin nombres de ubicación/producto: los listados y el detalle,
// que leen la vista enriquecida, los completan.
func toTransferRecordResponse(rec *entity.TransferRecord) dto.TransferRecordDTO {
	return dto.TransferRecordDTO{
		ID:                rec.ID,
		FromLocationID:    rec.FromLocationID,
		ToLocationID:      rec.ToLocationID,
		ProductID:         rec.ProductID,
		ItemKind:          rec.ItemKind,
		Quantity:          rec.Quantity,
		NewStatus:         rec.NewStatus,
		Notes:             rec.Notes,
		TransferredByID:   rec.TransferredByID,
		TransferredByRole: rec.TransferredByRole,
		SentByID:          rec.SentByID,
		ReceivedByID:      rec.ReceivedByID,
		TransferDate:      rec.TransferDate,
		IsVerified:        rec.IsVerified,
		VerifiedByID:      rec.VerifiedByID,
		VerificationDate:  rec.VerificationDate,
	}
}
