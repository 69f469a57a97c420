package controller

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/internal/adapter/repository"
	"github.com/gestaofacil/backend/internal/domain/audit"
	"github.com/gestaofacil/backend/internal/domain/catalog"
	"github.com/gestaofacil/backend/internal/domain/customer"
	entrydomain "github.com/gestaofacil/backend/internal/domain/entry"
	quotedomain "github.com/gestaofacil/backend/internal/domain/quote"
	saledomain "github.com/gestaofacil/backend/internal/domain/sale"
	sodomain "github.com/gestaofacil/backend/internal/domain/serviceorder"
	"github.com/gestaofacil/backend/internal/domain/sysconfig"
)

const testOwner = "owner-1"

// testRouter cria um router de teste com o dono já resolvido no contexto
func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("owner_id", testOwner)
		c.Set("owner_email", "dono@teste.com")
	})
	return r
}

type fakeCatalogRepo struct {
	items map[string]*catalog.Item
}

func newFakeCatalogRepo(items ...*catalog.Item) *fakeCatalogRepo {
	f := &fakeCatalogRepo{items: make(map[string]*catalog.Item)}
	for _, item := range items {
		f.items[item.ID] = item
	}
	return f
}

func (f *fakeCatalogRepo) Create(_ context.Context, item *catalog.Item) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeCatalogRepo) Update(_ context.Context, item *catalog.Item) error {
	if _, ok := f.items[item.ID]; !ok {
		return repository.ErrCatalogItemNotFound
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeCatalogRepo) Delete(_ context.Context, ownerID, id string) error {
	item, ok := f.items[id]
	if !ok || item.OwnerID != ownerID {
		return repository.ErrCatalogItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeCatalogRepo) FindByID(_ context.Context, ownerID, id string) (*catalog.Item, error) {
	item, ok := f.items[id]
	if !ok || item.OwnerID != ownerID {
		return nil, repository.ErrCatalogItemNotFound
	}
	return item, nil
}

func (f *fakeCatalogRepo) FindByQrCode(_ context.Context, ownerID, qrCode string) (*catalog.Item, error) {
	for _, item := range f.items {
		if item.OwnerID == ownerID && item.QrCode == qrCode {
			return item, nil
		}
	}
	return nil, repository.ErrCatalogItemNotFound
}

func (f *fakeCatalogRepo) FindByOwner(_ context.Context, ownerID string) ([]*catalog.Item, error) {
	var out []*catalog.Item
	for _, item := range f.items {
		if item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) AdjustStock(_ context.Context, ownerID, id string, delta decimal.Decimal) (*catalog.Item, error) {
	item, ok := f.items[id]
	if !ok || item.OwnerID != ownerID {
		return nil, repository.ErrCatalogItemNotFound
	}
	updated := item.StockQuantity.Add(delta)
	if updated.IsNegative() {
		return nil, catalog.ErrInsufficientStock
	}
	item.StockQuantity = updated
	return item, nil
}

type fakeMovementRepo struct {
	movements []*catalog.Movement
}

func (f *fakeMovementRepo) Create(_ context.Context, m *catalog.Movement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) FindByOwner(_ context.Context, ownerID string) ([]*catalog.Movement, error) {
	var out []*catalog.Movement
	for _, m := range f.movements {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeSaleRepo struct {
	sales []*saledomain.Sale
}

func (f *fakeSaleRepo) Create(_ context.Context, s *saledomain.Sale) error {
	f.sales = append(f.sales, s)
	return nil
}

func (f *fakeSaleRepo) Update(_ context.Context, s *saledomain.Sale) error {
	for i, existing := range f.sales {
		if existing.ID == s.ID {
			f.sales[i] = s
			return nil
		}
	}
	return repository.ErrSaleNotFound
}

func (f *fakeSaleRepo) UpdateStatus(_ context.Context, ownerID, id string, status saledomain.Status) (*saledomain.Sale, error) {
	for _, s := range f.sales {
		if s.ID == id && s.OwnerID == ownerID {
			s.Status = status
			return s, nil
		}
	}
	return nil, repository.ErrSaleNotFound
}

func (f *fakeSaleRepo) Delete(_ context.Context, ownerID, id string) error {
	for i, s := range f.sales {
		if s.ID == id && s.OwnerID == ownerID {
			f.sales = append(f.sales[:i], f.sales[i+1:]...)
			return nil
		}
	}
	return repository.ErrSaleNotFound
}

func (f *fakeSaleRepo) FindByID(_ context.Context, ownerID, id string) (*saledomain.Sale, error) {
	for _, s := range f.sales {
		if s.ID == id && s.OwnerID == ownerID {
			return s, nil
		}
	}
	return nil, repository.ErrSaleNotFound
}

func (f *fakeSaleRepo) FindByOwner(_ context.Context, ownerID string) ([]*saledomain.Sale, error) {
	var out []*saledomain.Sale
	for _, s := range f.sales {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) FindByOwnerAndStatus(_ context.Context, ownerID string, status saledomain.Status) ([]*saledomain.Sale, error) {
	var out []*saledomain.Sale
	for _, s := range f.sales {
		if s.OwnerID == ownerID && s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) Search(_ context.Context, ownerID, term string) ([]*saledomain.Sale, error) {
	var out []*saledomain.Sale
	for _, s := range f.sales {
		if s.OwnerID == ownerID && strings.Contains(strings.ToLower(s.CustomerName), strings.ToLower(term)) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	logs []*audit.Log
}

func (f *fakeAuditRepo) Create(_ context.Context, l *audit.Log) error {
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeAuditRepo) FindByEntity(_ context.Context, entityType, entityID string) ([]*audit.Log, error) {
	var out []*audit.Log
	for _, l := range f.logs {
		if l.EntityType == entityType && l.EntityID == entityID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeAuditRepo) FindRecentByOwner(_ context.Context, ownerID string, limit int) ([]*audit.Log, error) {
	var out []*audit.Log
	for _, l := range f.logs {
		if l.OwnerID == ownerID && len(out) < limit {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeEntryRepo struct {
	entries []*entrydomain.Entry
}

func (f *fakeEntryRepo) Create(_ context.Context, e *entrydomain.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeEntryRepo) Update(_ context.Context, e *entrydomain.Entry) error {
	for i, existing := range f.entries {
		if existing.ID == e.ID {
			f.entries[i] = e
			return nil
		}
	}
	return repository.ErrEntryNotFound
}

func (f *fakeEntryRepo) Delete(_ context.Context, ownerID, id string) error {
	for i, e := range f.entries {
		if e.ID == id && e.OwnerID == ownerID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrEntryNotFound
}

func (f *fakeEntryRepo) FindByID(_ context.Context, ownerID, id string) (*entrydomain.Entry, error) {
	for _, e := range f.entries {
		if e.ID == id && e.OwnerID == ownerID {
			return e, nil
		}
	}
	return nil, repository.ErrEntryNotFound
}

func (f *fakeEntryRepo) FindByOwner(_ context.Context, ownerID string) ([]*entrydomain.Entry, error) {
	var out []*entrydomain.Entry
	for _, e := range f.entries {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeQuoteRepo struct {
	quotes []*quotedomain.Quote
}

func (f *fakeQuoteRepo) Create(_ context.Context, q *quotedomain.Quote) error {
	f.quotes = append(f.quotes, q)
	return nil
}

func (f *fakeQuoteRepo) Update(_ context.Context, q *quotedomain.Quote) error {
	for i, existing := range f.quotes {
		if existing.ID == q.ID {
			f.quotes[i] = q
			return nil
		}
	}
	return repository.ErrQuoteNotFound
}

func (f *fakeQuoteRepo) Delete(_ context.Context, ownerID, id string) error {
	for i, q := range f.quotes {
		if q.ID == id && q.OwnerID == ownerID {
			f.quotes = append(f.quotes[:i], f.quotes[i+1:]...)
			return nil
		}
	}
	return repository.ErrQuoteNotFound
}

func (f *fakeQuoteRepo) FindByID(_ context.Context, ownerID, id string) (*quotedomain.Quote, error) {
	for _, q := range f.quotes {
		if q.ID == id && q.OwnerID == ownerID {
			return q, nil
		}
	}
	return nil, repository.ErrQuoteNotFound
}

func (f *fakeQuoteRepo) FindByOwner(_ context.Context, ownerID string) ([]*quotedomain.Quote, error) {
	var out []*quotedomain.Quote
	for _, q := range f.quotes {
		if q.OwnerID == ownerID {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeServiceOrderRepo struct {
	orders []*sodomain.ServiceOrder
}

func (f *fakeServiceOrderRepo) Create(_ context.Context, o *sodomain.ServiceOrder) error {
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeServiceOrderRepo) Update(_ context.Context, o *sodomain.ServiceOrder) error {
	for i, existing := range f.orders {
		if existing.ID == o.ID {
			f.orders[i] = o
			return nil
		}
	}
	return repository.ErrServiceOrderNotFound
}

func (f *fakeServiceOrderRepo) Delete(_ context.Context, ownerID, id string) error {
	for i, o := range f.orders {
		if o.ID == id && o.OwnerID == ownerID {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return nil
		}
	}
	return repository.ErrServiceOrderNotFound
}

func (f *fakeServiceOrderRepo) FindByID(_ context.Context, ownerID, id string) (*sodomain.ServiceOrder, error) {
	for _, o := range f.orders {
		if o.ID == id && o.OwnerID == ownerID {
			return o, nil
		}
	}
	return nil, repository.ErrServiceOrderNotFound
}

func (f *fakeServiceOrderRepo) FindByOwner(_ context.Context, ownerID string) ([]*sodomain.ServiceOrder, error) {
	var out []*sodomain.ServiceOrder
	for _, o := range f.orders {
		if o.OwnerID == ownerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeServiceOrderRepo) CountByOwnerAndStatus(_ context.Context, ownerID string, status sodomain.Status) (int64, error) {
	var count int64
	for _, o := range f.orders {
		if o.OwnerID == ownerID && o.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeCustomerRepo struct {
	customers []*customer.Customer
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	f.customers = append(f.customers, c)
	return nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *customer.Customer) error {
	for i, existing := range f.customers {
		if existing.ID == c.ID {
			f.customers[i] = c
			return nil
		}
	}
	return repository.ErrCustomerNotFound
}

func (f *fakeCustomerRepo) Delete(_ context.Context, ownerID, id string) error {
	for i, c := range f.customers {
		if c.ID == id && c.OwnerID == ownerID {
			f.customers = append(f.customers[:i], f.customers[i+1:]...)
			return nil
		}
	}
	return repository.ErrCustomerNotFound
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, ownerID, id string) (*customer.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id && c.OwnerID == ownerID {
			return c, nil
		}
	}
	return nil, repository.ErrCustomerNotFound
}

func (f *fakeCustomerRepo) FindByOwner(_ context.Context, ownerID string) ([]*customer.Customer, error) {
	var out []*customer.Customer
	for _, c := range f.customers {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	var count int64
	for _, c := range f.customers {
		if c.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

type fakeConfigRepo struct {
	configs map[string]*sysconfig.Config
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{configs: make(map[string]*sysconfig.Config)}
}

func (f *fakeConfigRepo) FindByOwner(_ context.Context, ownerID string) (*sysconfig.Config, error) {
	cfg, ok := f.configs[ownerID]
	if !ok {
		return nil, repository.ErrConfigNotFound
	}
	return cfg, nil
}

func (f *fakeConfigRepo) Save(_ context.Context, c *sysconfig.Config) error {
	f.configs[c.OwnerID] = c
	return nil
}
