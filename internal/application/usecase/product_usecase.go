package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medstock-api/internal/application/dto"
	"github.com/jhoicas/medstock-api/internal/domain"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo: accesorios y repuestos (BULK) y
// dispositivos médicos serializados (DEVICE).
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

func validProductType(t string) bool {
	switch t {
	case entity.ProductTypeAccessory, entity.ProductTypeSparePart,
		entity.ProductTypeMedicalDevice, entity.ProductTypeDiagnosticDevice:
		return true
	}
	return false
}

// Create registra un producto. La clase de ítem (BULK/DEVICE) se deriva del
// tipo, nunca la elige el caller.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*entity.Product, error) {
	if strings.TrimSpace(in.Name) == "" || !validProductType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	kind := entity.KindForType(in.Type)
	status := in.Status
	if kind == entity.ItemKindDevice {
		if status == "" {
			status = entity.DeviceStatusActive
		}
		if !entity.IsDeviceStatus(status) {
			return nil, domain.ErrInvalidInput
		}
	} else {
		status = ""
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		Brand:         in.Brand,
		Model:         in.Model,
		ItemKind:      kind,
		Type:          in.Type,
		SerialNumber:  in.SerialNumber,
		Status:        status,
		PurchasePrice: in.PurchasePrice,
		SellingPrice:  in.SellingPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// Update modifica los campos editables. El tipo (y por tanto la clase de ítem)
// es inmutable: cambiarlo rompería la semántica del stock existente.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if product.ItemKind == entity.ItemKindDevice && in.Status != "" {
		if !entity.IsDeviceStatus(in.Status) {
			return nil, domain.ErrInvalidInput
		}
		product.Status = in.Status
	}
	product.Name = strings.TrimSpace(in.Name)
	product.Brand = in.Brand
	product.Model = in.Model
	product.SerialNumber = in.SerialNumber
	product.PurchasePrice = in.PurchasePrice
	product.SellingPrice = in.SellingPrice
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// List devuelve la página del catálogo con el total.
func (uc *ProductUseCase) List(f repository.ProductFilters) ([]*entity.Product, int, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	return uc.productRepo.List(f)
}
