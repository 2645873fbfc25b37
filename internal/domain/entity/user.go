package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleDoctor   = "DOCTOR"
)

// User representa un usuario del sistema (administrador, empleado o médico).
// StockLocationID es la ubicación de stock asignada al empleado (destino por
// defecto de sus solicitudes de transferencia); puede ser nil para admins.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	Role            string
	StockLocationID *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName devuelve el nombre completo para mostrar en vistas e historial.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
