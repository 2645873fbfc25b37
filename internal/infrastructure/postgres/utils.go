package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta la violación de constraint único (23505). La usan
// los repos de productos (número de serie), solicitudes (transfer_code) y
// usuarios (email) para traducirla a un error de duplicado con contexto.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// Fallback para errores ya envueltos que perdieron el tipo pgconn.
	return strings.Contains(err.Error(), "23505")
}
