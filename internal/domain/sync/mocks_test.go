package sync

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"siigosync/internal/domain/invoice"
	"siigosync/internal/domain/order"
	"siigosync/internal/domain/product"
)

// MockRemote is a mock implementation of the Remote interface
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) ListProducts(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockRemote) CreateProduct(ctx context.Context, p product.Product) (*product.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockRemote) UpdateInventory(ctx context.Context, code string, stock int) error {
	args := m.Called(ctx, code, stock)
	return args.Error(0)
}

func (m *MockRemote) CreateInvoice(ctx context.Context, inv invoice.Invoice) (string, error) {
	args := m.Called(ctx, inv)
	return args.String(0), args.Error(1)
}

// MockProductRepository is a mock implementation of product.Repository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, limit int) ([]product.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of invoice.Repository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) GetInvoiceID(ctx context.Context, orderID string) (string, error) {
	args := m.Called(ctx, orderID)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoiceID(ctx context.Context, orderID, invoiceID string) error {
	args := m.Called(ctx, orderID, invoiceID)
	return args.Error(0)
}

// MockServicer is a mock implementation of the Servicer interface
type MockServicer struct {
	mock.Mock
}

func (m *MockServicer) result(args mock.Arguments) (*Result, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

func (m *MockServicer) PullProducts(ctx context.Context) (*Result, error) {
	return m.result(m.Called(ctx))
}

func (m *MockServicer) PushProducts(ctx context.Context) (*Result, error) {
	return m.result(m.Called(ctx))
}

func (m *MockServicer) SyncInventory(ctx context.Context) (*Result, error) {
	return m.result(m.Called(ctx))
}

func (m *MockServicer) ApplyOrderDelta(ctx context.Context, event order.Event, sign int) (*Result, error) {
	return m.result(m.Called(ctx, event, sign))
}

func (m *MockServicer) SubmitInvoice(ctx context.Context, event order.Event) (*Result, error) {
	return m.result(m.Called(ctx, event))
}

func (m *MockServicer) ResyncInvoices(ctx context.Context, events []order.Event) (*Result, error) {
	return m.result(m.Called(ctx, events))
}

// memCatalog простая реализация обеих сторон каталога для тестов свойств
type memCatalog struct {
	mu       sync.Mutex
	items    map[string]product.Product
	order    []string
	updates  map[string][]int
	invoices int
}

func newMemCatalog(products ...product.Product) *memCatalog {
	c := &memCatalog{
		items:   make(map[string]product.Product),
		updates: make(map[string][]int),
	}
	for _, p := range products {
		c.put(p)
	}
	return c
}

func (c *memCatalog) put(p product.Product) {
	if _, ok := c.items[p.Code]; !ok {
		c.order = append(c.order, p.Code)
	}
	c.items[p.Code] = p
}

func (c *memCatalog) all() []product.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]product.Product, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.items[code])
	}
	return out
}

func (c *memCatalog) ListProducts(_ context.Context) ([]product.Product, error) {
	return c.all(), nil
}

func (c *memCatalog) List(_ context.Context, _ int) ([]product.Product, error) {
	return c.all(), nil
}

func (c *memCatalog) GetByCode(_ context.Context, code string) (*product.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.items[code]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

func (c *memCatalog) Save(_ context.Context, p *product.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(*p)
	return nil
}

func (c *memCatalog) CreateProduct(_ context.Context, p product.Product) (*product.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p.RemoteID = "r-" + p.Code
	c.put(p)
	return &p, nil
}

func (c *memCatalog) UpdateInventory(_ context.Context, code string, stock int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates[code] = append(c.updates[code], stock)
	return nil
}

func (c *memCatalog) CreateInvoice(_ context.Context, _ invoice.Invoice) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invoices++
	return "inv-1", nil
}

// hookedCatalog memCatalog с точками вмешательства посреди прохода
type hookedCatalog struct {
	*memCatalog
	afterList    func()
	beforeCreate func()
}

func (h *hookedCatalog) List(ctx context.Context, limit int) ([]product.Product, error) {
	items, err := h.memCatalog.List(ctx, limit)
	if h.afterList != nil {
		h.afterList()
	}
	return items, err
}

func (h *hookedCatalog) CreateProduct(ctx context.Context, p product.Product) (*product.Product, error) {
	if h.beforeCreate != nil {
		h.beforeCreate()
	}
	return h.memCatalog.CreateProduct(ctx, p)
}
