package dto

import "time"

// CreateTransferRequest body para POST /api/stock/transfers (ejecución directa).
type CreateTransferRequest struct {
	FromLocationID string  `json:"from_location_id"`
	ToLocationID   string  `json:"to_location_id"`
	ProductID      string  `json:"product_id"`
	ItemKind       string  `json:"item_kind"`
	Quantity       int64   `json:"quantity"`
	Notes          string  `json:"notes,omitempty"`
	NewStatus      *string `json:"new_status,omitempty"`
}

// VerifyTransferRequest body para POST /api/stock/transfers/:id/verify.
type VerifyTransferRequest struct {
	Approved bool `json:"approved"`
}

// TransferRecordDTO registro de transferencia para respuestas e historial.
type TransferRecordDTO struct {
	ID                string     `json:"id"`
	FromLocationID    string     `json:"from_location_id"`
	FromLocationName  string     `json:"from_location_name,omitempty"`
	ToLocationID      string     `json:"to_location_id"`
	ToLocationName    string     `json:"to_location_name,omitempty"`
	ProductID         string     `json:"product_id"`
	ProductName       string     `json:"product_name,omitempty"`
	ItemKind          string     `json:"item_kind"`
	Quantity          int64      `json:"quantity"`
	NewStatus         *string    `json:"new_status,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	TransferredByID   string     `json:"transferred_by_id"`
	TransferredByName string     `json:"transferred_by_name,omitempty"`
	TransferredByRole string     `json:"transferred_by_role"`
	SentByID          *string    `json:"sent_by_id,omitempty"`
	ReceivedByID      *string    `json:"received_by_id,omitempty"`
	TransferDate      time.Time  `json:"transfer_date"`
	IsVerified        *bool      `json:"is_verified"`
	VerifiedByID      *string    `json:"verified_by_id,omitempty"`
	VerifiedByName    string     `json:"verified_by_name,omitempty"`
	VerificationDate  *time.Time `json:"verification_date,omitempty"`
}

// ListTransfersResponse historial paginado.
type ListTransfersResponse struct {
	Items      []TransferRecordDTO `json:"items"`
	Pagination PageResponse        `json:"pagination"`
}
