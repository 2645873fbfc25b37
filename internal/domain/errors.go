package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// Errores del motor de transferencias de stock.
	ErrInsufficientQuantity = errors.New("cantidad insuficiente en la ubicación origen")
	ErrDeviceNotAtSource    = errors.New("el dispositivo no se encuentra en la ubicación origen")
	ErrSameLocation         = errors.New("las ubicaciones origen y destino deben ser distintas")
	ErrUnknownItem          = errors.New("producto o ubicación desconocido")
	ErrInvalidQuantity      = errors.New("cantidad inválida")

	// Errores de los flujos de revisión y verificación.
	ErrAlreadyReviewed         = errors.New("la solicitud de transferencia ya fue revisada")
	ErrAlreadyVerified         = errors.New("la transferencia ya fue verificada")
	ErrMissingRejectionNotes   = errors.New("el rechazo requiere notas de revisión")
	ErrVerificationNotRequired = errors.New("la transferencia no requiere verificación")
	ErrTransferVerified        = errors.New("no se puede eliminar una transferencia ya verificada")
)
