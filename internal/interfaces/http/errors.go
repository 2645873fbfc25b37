package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medstock-api/internal/application/dto"
	"github.com/jhoicas/medstock-api/internal/domain"
)

// domainError traduce un error de dominio al par (status, code) del contrato HTTP.
// Todo lo no reconocido cae en 500 INTERNAL sin filtrar detalles internos.
func domainError(c *fiber.Ctx, err error) error {
	type mapping struct {
		status int
		code   string
	}
	table := []struct {
		err error
		m   mapping
	}{
		{domain.ErrInvalidInput, mapping{fiber.StatusBadRequest, "VALIDATION"}},
		{domain.ErrInvalidQuantity, mapping{fiber.StatusBadRequest, "INVALID_QUANTITY"}},
		{domain.ErrSameLocation, mapping{fiber.StatusBadRequest, "SAME_LOCATION"}},
		{domain.ErrMissingRejectionNotes, mapping{fiber.StatusBadRequest, "MISSING_REJECTION_NOTES"}},
		{domain.ErrVerificationNotRequired, mapping{fiber.StatusBadRequest, "VERIFICATION_NOT_REQUIRED"}},
		{domain.ErrUnauthorized, mapping{fiber.StatusUnauthorized, "UNAUTHORIZED"}},
		{domain.ErrForbidden, mapping{fiber.StatusForbidden, "FORBIDDEN"}},
		{domain.ErrNotFound, mapping{fiber.StatusNotFound, "NOT_FOUND"}},
		{domain.ErrUserNotFound, mapping{fiber.StatusNotFound, "NOT_FOUND"}},
		{domain.ErrUnknownItem, mapping{fiber.StatusNotFound, "UNKNOWN_ITEM"}},
		{domain.ErrInsufficientQuantity, mapping{fiber.StatusConflict, "INSUFFICIENT_QUANTITY"}},
		{domain.ErrDeviceNotAtSource, mapping{fiber.StatusConflict, "DEVICE_NOT_AT_SOURCE"}},
		{domain.ErrAlreadyReviewed, mapping{fiber.StatusConflict, "ALREADY_REVIEWED"}},
		{domain.ErrAlreadyVerified, mapping{fiber.StatusConflict, "ALREADY_VERIFIED"}},
		{domain.ErrTransferVerified, mapping{fiber.StatusConflict, "TRANSFER_ALREADY_VERIFIED"}},
		{domain.ErrEmailAlreadyExists, mapping{fiber.StatusConflict, "EMAIL_ALREADY_EXISTS"}},
		{domain.ErrDuplicate, mapping{fiber.StatusConflict, "DUPLICATE"}},
		{domain.ErrConflict, mapping{fiber.StatusConflict, "CONFLICT"}},
	}
	for _, entry := range table {
		if errors.Is(err, entry.err) {
			return c.Status(entry.m.status).JSON(dto.ErrorResponse{Code: entry.m.code, Message: entry.err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
