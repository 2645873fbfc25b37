package dto

import "time"

// CreateTransferRequestRequest body para POST /api/stock/transfer-requests.
// ToLocationID es opcional: si falta, se usa la ubicación asignada al solicitante.
type CreateTransferRequestRequest struct {
	FromLocationID    string `json:"from_location_id"`
	ToLocationID      string `json:"to_location_id,omitempty"`
	ProductID         string `json:"product_id"`
	ItemKind          string `json:"item_kind"`
	RequestedQuantity int64  `json:"requested_quantity"`
	Reason            string `json:"reason"`
	Urgency           string `json:"urgency"`
}

// ReviewTransferRequestRequest body para PUT /api/stock/transfer-requests/:id/review.
type ReviewTransferRequestRequest struct {
	Action string `json:"action"` // APPROVE | REJECT
	Notes  string `json:"notes,omitempty"`
}

// TransferRequestDTO solicitud para respuestas y listados.
type TransferRequestDTO struct {
	ID                string     `json:"id"`
	TransferCode      string     `json:"transfer_code"`
	FromLocationID    string     `json:"from_location_id"`
	FromLocationName  string     `json:"from_location_name,omitempty"`
	ToLocationID      string     `json:"to_location_id"`
	ToLocationName    string     `json:"to_location_name,omitempty"`
	ProductID         string     `json:"product_id"`
	ProductName       string     `json:"product_name,omitempty"`
	ItemKind          string     `json:"item_kind"`
	RequestedQuantity int64      `json:"requested_quantity"`
	Reason            string     `json:"reason"`
	Urgency           string     `json:"urgency"`
	Status            string     `json:"status"`
	RequestedByID     string     `json:"requested_by_id"`
	RequestedByName   string     `json:"requested_by_name,omitempty"`
	ReviewedByID      *string    `json:"reviewed_by_id,omitempty"`
	ReviewedByName    string     `json:"reviewed_by_name,omitempty"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes       string     `json:"review_notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// CreateTransferRequestResponse solicitud creada más la advertencia temprana de
// disponibilidad (no vinculante: el stock puede llegar antes de la revisión).
type CreateTransferRequestResponse struct {
	Request      TransferRequestDTO  `json:"request"`
	Availability *AvailabilityReport `json:"availability,omitempty"`
}

// RequestSummaryDTO conteos por estado.
type RequestSummaryDTO struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Completed int `json:"completed"`
}

// ListTransferRequestsResponse listado paginado con resumen.
type ListTransferRequestsResponse struct {
	Items      []TransferRequestDTO `json:"items"`
	Pagination PageResponse         `json:"pagination"`
	Summary    RequestSummaryDTO    `json:"summary"`
}
