package stock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso de stock.
// El fakeTxRunner emula el contrato todo-o-nada de la transacción real con
// snapshot/restore del estado completo.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	stock     map[string]*entity.StockLine // clave: locationID|productID
	records   map[string]*entity.TransferRecord
	requests  map[string]*entity.TransferRequest
	products  map[string]*entity.Product
	locations map[string]*entity.Location
	users     map[string]*entity.User
	nextCode  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		stock:     make(map[string]*entity.StockLine),
		records:   make(map[string]*entity.TransferRecord),
		requests:  make(map[string]*entity.TransferRequest),
		products:  make(map[string]*entity.Product),
		locations: make(map[string]*entity.Location),
		users:     make(map[string]*entity.User),
		nextCode:  1,
	}
}

func stockKey(locationID, productID string) string {
	return locationID + "|" + productID
}

func (s *fakeStore) snapshot() *fakeStore {
	c := newFakeStore()
	c.nextCode = s.nextCode
	for k, v := range s.stock {
		line := *v
		c.stock[k] = &line
	}
	for k, v := range s.records {
		rec := *v
		c.records[k] = &rec
	}
	for k, v := range s.requests {
		req := *v
		c.requests[k] = &req
	}
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range s.locations {
		l := *v
		c.locations[k] = &l
	}
	for k, v := range s.users {
		u := *v
		c.users[k] = &u
	}
	return c
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.stock = snap.stock
	s.records = snap.records
	s.requests = snap.requests
	s.products = snap.products
	s.locations = snap.locations
	s.users = snap.users
	s.nextCode = snap.nextCode
}

// fakeTxRunner ejecuta el callback sobre el mismo store; si falla, restaura el
// snapshot previo (mismo contrato observable que la transacción de pgx).
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	recordRepo repository.TransferRecordRepository,
	requestRepo repository.TransferRequestRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := r.store.snapshot()
	err := fn(
		&fakeStockRepo{store: r.store},
		&fakeRecordRepo{store: r.store},
		&fakeRequestRepo{store: r.store},
		&fakeProductRepo{store: r.store},
	)
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

// ── StockRepository ───────────────────────────────────────────────────────────

type fakeStockRepo struct {
	store *fakeStore
}

func (r *fakeStockRepo) Get(locationID, productID string) (*entity.StockLine, error) {
	line, ok := r.store.stock[stockKey(locationID, productID)]
	if !ok {
		return nil, nil
	}
	c := *line
	return &c, nil
}

func (r *fakeStockRepo) GetForUpdate(locationID, productID string) (*entity.StockLine, error) {
	return r.Get(locationID, productID)
}

func (r *fakeStockRepo) UpsertDelta(locationID, productID, itemKind string, delta int64, statusOverride *string) error {
	key := stockKey(locationID, productID)
	line, ok := r.store.stock[key]
	if !ok {
		line = &entity.StockLine{
			LocationID: locationID,
			ProductID:  productID,
			ItemKind:   itemKind,
		}
		r.store.stock[key] = line
	}
	line.Quantity += delta
	if line.Quantity < 0 {
		return fmt.Errorf("violación de check: cantidad negativa en %s", key)
	}
	if statusOverride != nil {
		line.Status = *statusOverride
	}
	line.UpdatedAt = time.Now()
	return nil
}

func (r *fakeStockRepo) Delete(locationID, productID string) error {
	delete(r.store.stock, stockKey(locationID, productID))
	return nil
}

func (r *fakeStockRepo) List(f repository.StockFilters) ([]*repository.StockLineView, int, error) {
	var views []*repository.StockLineView
	for _, line := range r.store.stock {
		if f.LocationID != "" && line.LocationID != f.LocationID {
			continue
		}
		if f.ItemKind != "" && line.ItemKind != f.ItemKind {
			continue
		}
		v := &repository.StockLineView{StockLine: *line}
		if p, ok := r.store.products[line.ProductID]; ok {
			v.ProductName = p.Name
			v.ProductType = p.Type
		}
		if l, ok := r.store.locations[line.LocationID]; ok {
			v.LocationName = l.Name
		}
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool {
		return stockKey(views[i].LocationID, views[i].ProductID) < stockKey(views[j].LocationID, views[j].ProductID)
	})
	return views, len(views), nil
}

func (r *fakeStockRepo) Summary(locationID string) (*repository.StockSummary, error) {
	var s repository.StockSummary
	for _, line := range r.store.stock {
		if locationID != "" && line.LocationID != locationID {
			continue
		}
		s.TotalLines++
		s.TotalQuantity += line.Quantity
		if line.ItemKind == entity.ItemKindBulk {
			s.BulkLines++
		} else {
			s.DeviceLines++
		}
	}
	return &s, nil
}

func (r *fakeStockRepo) TotalQuantity(productID string) (int64, error) {
	var total int64
	for _, line := range r.store.stock {
		if line.ProductID == productID {
			total += line.Quantity
		}
	}
	return total, nil
}

// ── TransferRecordRepository ──────────────────────────────────────────────────

type fakeRecordRepo struct {
	store *fakeStore
}

func (r *fakeRecordRepo) Create(rec *entity.TransferRecord) error {
	c := *rec
	r.store.records[rec.ID] = &c
	return nil
}

func (r *fakeRecordRepo) GetByID(id string) (*entity.TransferRecord, error) {
	rec, ok := r.store.records[id]
	if !ok {
		return nil, nil
	}
	c := *rec
	return &c, nil
}

func (r *fakeRecordRepo) GetForUpdate(id string) (*entity.TransferRecord, error) {
	return r.GetByID(id)
}

func (r *fakeRecordRepo) SetVerification(id string, verified bool, verifiedByID string, at time.Time) error {
	rec, ok := r.store.records[id]
	if !ok {
		return fmt.Errorf("registro %s no encontrado", id)
	}
	rec.IsVerified = &verified
	rec.VerifiedByID = &verifiedByID
	rec.VerificationDate = &at
	return nil
}

func (r *fakeRecordRepo) Delete(id string) error {
	delete(r.store.records, id)
	return nil
}

func (r *fakeRecordRepo) GetView(id string) (*repository.TransferRecordView, error) {
	rec, ok := r.store.records[id]
	if !ok {
		return nil, nil
	}
	return r.toView(rec), nil
}

func (r *fakeRecordRepo) toView(rec *entity.TransferRecord) *repository.TransferRecordView {
	v := &repository.TransferRecordView{TransferRecord: *rec}
	if p, ok := r.store.products[rec.ProductID]; ok {
		v.ProductName = p.Name
	}
	if l, ok := r.store.locations[rec.FromLocationID]; ok {
		v.FromLocationName = l.Name
	}
	if l, ok := r.store.locations[rec.ToLocationID]; ok {
		v.ToLocationName = l.Name
	}
	if u, ok := r.store.users[rec.TransferredByID]; ok {
		v.TransferredByName = u.FullName()
	}
	return v
}

func (r *fakeRecordRepo) List(f repository.TransferFilters) ([]*repository.TransferRecordView, int, error) {
	var views []*repository.TransferRecordView
	for _, rec := range r.store.records {
		if f.LocationID != "" && rec.FromLocationID != f.LocationID && rec.ToLocationID != f.LocationID {
			continue
		}
		if f.PendingOnly && !rec.NeedsVerification() {
			continue
		}
		views = append(views, r.toView(rec))
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].TransferDate.After(views[j].TransferDate)
	})
	return views, len(views), nil
}

// ── TransferRequestRepository ─────────────────────────────────────────────────

type fakeRequestRepo struct {
	store *fakeStore
}

func (r *fakeRequestRepo) Create(req *entity.TransferRequest) error {
	c := *req
	r.store.requests[req.ID] = &c
	return nil
}

func (r *fakeRequestRepo) GetByID(id string) (*entity.TransferRequest, error) {
	req, ok := r.store.requests[id]
	if !ok {
		return nil, nil
	}
	c := *req
	return &c, nil
}

func (r *fakeRequestRepo) GetForUpdate(id string) (*entity.TransferRequest, error) {
	return r.GetByID(id)
}

func (r *fakeRequestRepo) UpdateReview(req *entity.TransferRequest) error {
	stored, ok := r.store.requests[req.ID]
	if !ok {
		return fmt.Errorf("solicitud %s no encontrada", req.ID)
	}
	stored.Status = req.Status
	stored.ReviewedByID = req.ReviewedByID
	stored.ReviewedAt = req.ReviewedAt
	stored.ReviewNotes = req.ReviewNotes
	stored.UpdatedAt = req.UpdatedAt
	return nil
}

func (r *fakeRequestRepo) List(f repository.RequestFilters) ([]*repository.TransferRequestView, int, *repository.RequestSummary, error) {
	var views []*repository.TransferRequestView
	summary := &repository.RequestSummary{}
	for _, req := range r.store.requests {
		if f.ForUserID != "" || f.ForLocationID != "" {
			if req.RequestedByID != f.ForUserID && req.ToLocationID != f.ForLocationID {
				continue
			}
		}
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		if f.Urgency != "" && req.Urgency != f.Urgency {
			continue
		}
		summary.Total++
		switch req.Status {
		case entity.RequestStatusPending:
			summary.Pending++
		case entity.RequestStatusApproved:
			summary.Approved++
		case entity.RequestStatusRejected:
			summary.Rejected++
		case entity.RequestStatusCompleted:
			summary.Completed++
		}
		views = append(views, &repository.TransferRequestView{TransferRequest: *req})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, summary.Total, summary, nil
}

func (r *fakeRequestRepo) NextTransferCode() (string, error) {
	for {
		code := fmt.Sprintf("STR-%04d", r.store.nextCode)
		r.store.nextCode++
		taken := false
		for _, req := range r.store.requests {
			if req.TransferCode == code {
				taken = true
				break
			}
		}
		if !taken {
			return code, nil
		}
	}
}

// ── LocationRepository ────────────────────────────────────────────────────────

type fakeLocationRepo struct {
	store *fakeStore
}

func (r *fakeLocationRepo) Create(location *entity.Location) error {
	c := *location
	r.store.locations[location.ID] = &c
	return nil
}

func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := r.store.locations[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (r *fakeLocationRepo) Update(location *entity.Location) error {
	c := *location
	r.store.locations[location.ID] = &c
	return nil
}

func (r *fakeLocationRepo) List(includeInactive bool, limit, offset int) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.store.locations {
		if !includeInactive && !l.IsActive {
			continue
		}
		c := *l
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) Create(product *entity.Product) error {
	c := *product
	r.store.products[product.ID] = &c
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *fakeProductRepo) Update(product *entity.Product) error {
	c := *product
	r.store.products[product.ID] = &c
	return nil
}

func (r *fakeProductRepo) UpdateStatus(id, status string) error {
	p, ok := r.store.products[id]
	if !ok {
		return fmt.Errorf("producto %s no encontrado", id)
	}
	p.Status = status
	return nil
}

func (r *fakeProductRepo) List(f repository.ProductFilters) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if f.ItemKind != "" && p.ItemKind != f.ItemKind {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

// ── UserRepository ────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	c := *user
	r.store.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	c := *user
	r.store.users[user.ID] = &c
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture común: dos ubicaciones activas, producto BULK con stock, dispositivo
// en la central, un admin y un empleado asignado a la sucursal.
// ──────────────────────────────────────────────────────────────────────────────

const (
	locCentral  = "loc-central"
	locBranch   = "loc-sucursal"
	prodBulk    = "prod-mascarillas"
	prodDevice  = "prod-concentrador"
	userAdmin   = "user-admin"
	userEmploye = "user-empleado"
)

type fixture struct {
	store        *fakeStore
	txRunner     *fakeTxRunner
	stockRepo    *fakeStockRepo
	recordRepo   *fakeRecordRepo
	requestRepo  *fakeRequestRepo
	locationRepo *fakeLocationRepo
	productRepo  *fakeProductRepo
	userRepo     *fakeUserRepo
}

func newFixture() *fixture {
	store := newFakeStore()
	now := time.Now()

	branchID := locBranch
	store.locations[locCentral] = &entity.Location{ID: locCentral, Name: "Depósito Central", IsActive: true, CreatedAt: now, UpdatedAt: now}
	store.locations[locBranch] = &entity.Location{ID: locBranch, Name: "Sucursal Norte", IsActive: true, CreatedAt: now, UpdatedAt: now}

	store.products[prodBulk] = &entity.Product{
		ID: prodBulk, Name: "Mascarillas CPAP", ItemKind: entity.ItemKindBulk,
		Type: entity.ProductTypeAccessory, CreatedAt: now, UpdatedAt: now,
	}
	store.products[prodDevice] = &entity.Product{
		ID: prodDevice, Name: "Concentrador de oxígeno", ItemKind: entity.ItemKindDevice,
		Type: entity.ProductTypeMedicalDevice, SerialNumber: "OXY-001",
		Status: entity.DeviceStatusActive, CreatedAt: now, UpdatedAt: now,
	}

	store.stock[stockKey(locCentral, prodBulk)] = &entity.StockLine{
		LocationID: locCentral, ProductID: prodBulk, ItemKind: entity.ItemKindBulk,
		Quantity: 10, Status: entity.StockStatusForSale, UpdatedAt: now,
	}
	store.stock[stockKey(locCentral, prodDevice)] = &entity.StockLine{
		LocationID: locCentral, ProductID: prodDevice, ItemKind: entity.ItemKindDevice,
		Quantity: 1, Status: entity.DeviceStatusActive, UpdatedAt: now,
	}

	store.users[userAdmin] = &entity.User{
		ID: userAdmin, Email: "admin@medstock.test", Role: entity.RoleAdmin,
		FirstName: "Ana", LastName: "Admin", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	store.users[userEmploye] = &entity.User{
		ID: userEmploye, Email: "empleado@medstock.test", Role: entity.RoleEmployee,
		FirstName: "Edu", LastName: "Empleado", StockLocationID: &branchID,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}

	return &fixture{
		store:        store,
		txRunner:     &fakeTxRunner{store: store},
		stockRepo:    &fakeStockRepo{store: store},
		recordRepo:   &fakeRecordRepo{store: store},
		requestRepo:  &fakeRequestRepo{store: store},
		locationRepo: &fakeLocationRepo{store: store},
		productRepo:  &fakeProductRepo{store: store},
		userRepo:     &fakeUserRepo{store: store},
	}
}

func (f *fixture) quantityAt(locationID, productID string) int64 {
	line, ok := f.store.stock[stockKey(locationID, productID)]
	if !ok {
		return 0
	}
	return line.Quantity
}

func (f *fixture) hasLine(locationID, productID string) bool {
	_, ok := f.store.stock[stockKey(locationID, productID)]
	return ok
}
