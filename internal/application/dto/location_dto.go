package dto

import "time"

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	ResponsibleUserID *string `json:"responsible_user_id,omitempty"`
}

// UpdateLocationRequest body para PUT /api/locations/:id.
type UpdateLocationRequest struct {
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	ResponsibleUserID *string `json:"responsible_user_id,omitempty"`
}

// LocationResponse ubicación en respuestas.
type LocationResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	IsActive          bool      `json:"is_active"`
	ResponsibleUserID *string   `json:"responsible_user_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
