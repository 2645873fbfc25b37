package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clase de ítem: determina la semántica de cantidad en el stock.
//   - BULK: cantidad divisible (accesorios, repuestos).
//   - DEVICE: serializado, cantidad siempre 1 y exclusivo de una ubicación.
const (
	ItemKindBulk   = "BULK"
	ItemKindDevice = "DEVICE"
)

// Tipos de producto.
const (
	ProductTypeAccessory        = "ACCESSORY"
	ProductTypeSparePart        = "SPARE_PART"
	ProductTypeMedicalDevice    = "MEDICAL_DEVICE"
	ProductTypeDiagnosticDevice = "DIAGNOSTIC_DEVICE"
)

// Estados de dispositivo.
const (
	DeviceStatusActive      = "ACTIVE"
	DeviceStatusMaintenance = "MAINTENANCE"
	DeviceStatusRetired     = "RETIRED"
	DeviceStatusReserved    = "RESERVED"
	DeviceStatusSold        = "SOLD"
)

// Product representa un artículo del catálogo: accesorio/repuesto a granel (BULK)
// o dispositivo médico serializado (DEVICE).
type Product struct {
	ID            string
	Name          string
	Brand         string
	Model         string
	ItemKind      string // BULK | DEVICE
	Type          string // ACCESSORY | SPARE_PART | MEDICAL_DEVICE | DIAGNOSTIC_DEVICE
	SerialNumber  string // solo dispositivos
	Status        string // solo dispositivos: ACTIVE, MAINTENANCE, RETIRED, RESERVED, SOLD
	PurchasePrice decimal.Decimal
	SellingPrice  decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// KindForType devuelve la clase de ítem que corresponde a un tipo de producto.
func KindForType(productType string) string {
	switch productType {
	case ProductTypeMedicalDevice, ProductTypeDiagnosticDevice:
		return ItemKindDevice
	default:
		return ItemKindBulk
	}
}

// IsDeviceStatus indica si un valor pertenece al enum de estados de dispositivo.
func IsDeviceStatus(s string) bool {
	switch s {
	case DeviceStatusActive, DeviceStatusMaintenance, DeviceStatusRetired,
		DeviceStatusReserved, DeviceStatusSold:
		return true
	}
	return false
}

// IsMovableDeviceStatus indica si un dispositivo en ese estado puede transferirse.
// Los vendidos y dados de baja quedan fuera de circulación.
func IsMovableDeviceStatus(s string) bool {
	return s != DeviceStatusSold && s != DeviceStatusRetired
}
