package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Saipoo/foodorder/internal/auth"
	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/Saipoo/foodorder/internal/queue"
	"github.com/Saipoo/foodorder/internal/ratelimiter"
	"github.com/Saipoo/foodorder/internal/repo"
	"github.com/Saipoo/foodorder/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// In-memory repositories backing the handler tests. The order repo keeps the
// CAS semantics of the mongo implementation so transition races behave the
// same way end to end.

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*domain.Order
	seq    int64
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[primitive.ObjectID]*domain.Order)}
}

func (r *memOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *memOrderRepo) ListByCustomer(_ context.Context, customerID primitive.ObjectID) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Order
	for _, o := range r.orders {
		if o.Customer.ID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *memOrderRepo) ListSince(_ context.Context, since time.Time) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Order
	for _, o := range r.orders {
		if !o.CreatedAt.Before(since) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if order.Status != from {
		return nil, repo.ErrStaleStatus
	}
	order.Status = to
	order.UpdatedAt = time.Now()
	clone := *order
	return &clone, nil
}

func (r *memOrderRepo) NextOrderNumber(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	return r.seq, nil
}

func (r *memOrderRepo) CountByStatus(_ context.Context, statuses ...domain.OrderStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(statuses) == 0 {
		return int64(len(r.orders)), nil
	}
	var count int64
	for _, o := range r.orders {
		for _, s := range statuses {
			if o.Status == s {
				count++
			}
		}
	}
	return count, nil
}

type memMenuRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*domain.MenuItem
}

func newMemMenuRepo() *memMenuRepo {
	return &memMenuRepo{items: make(map[primitive.ObjectID]*domain.MenuItem)}
}

func (r *memMenuRepo) Create(_ context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *memMenuRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *memMenuRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.MenuItem
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *memMenuRepo) List(_ context.Context, availableOnly bool) ([]domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.MenuItem
	for _, item := range r.items {
		if availableOnly && !item.Available {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (r *memMenuRepo) Update(_ context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return repo.ErrNotFound
	}
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *memMenuRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type memRevenueRepo struct {
	mu      sync.Mutex
	entries []domain.RevenueEntry
	byOrder map[primitive.ObjectID]bool
}

func newMemRevenueRepo() *memRevenueRepo {
	return &memRevenueRepo{byOrder: make(map[primitive.ObjectID]bool)}
}

func (r *memRevenueRepo) Create(_ context.Context, entry *domain.RevenueEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byOrder[entry.OrderID] {
		return repo.ErrDuplicateKey
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	r.byOrder[entry.OrderID] = true
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memRevenueRepo) ListAll(_ context.Context) ([]domain.RevenueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.RevenueEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

type memCustomerRepo struct {
	mu        sync.Mutex
	customers map[primitive.ObjectID]*domain.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[primitive.ObjectID]*domain.Customer)}
}

func (r *memCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.customers {
		if c.Email == customer.Email {
			return repo.ErrDuplicateKey
		}
	}
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.customers {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, repo.ErrNotFound
}

type memAdminRepo struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]*domain.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: make(map[primitive.ObjectID]*domain.Admin)}
}

func (r *memAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.admins {
		if a.Email == admin.Email {
			return repo.ErrDuplicateKey
		}
	}
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	clone := *admin
	r.admins[admin.ID] = &clone
	return nil
}

func (r *memAdminRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.admins[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *memAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.admins {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, repo.ErrNotFound
}

type noopBroker struct{}

func (noopBroker) Publish(context.Context, string, []byte) error             { return nil }
func (noopBroker) Subscribe(context.Context, string, queue.MessageHandler) error { return nil }
func (noopBroker) Close() error                                              { return nil }

func newTestApplication(t *testing.T) (*application, *memMenuRepo) {
	t.Helper()

	logger := zap.NewNop().Sugar()

	orderRepo := newMemOrderRepo()
	menuRepo := newMemMenuRepo()
	revenueRepo := newMemRevenueRepo()
	customerRepo := newMemCustomerRepo()
	adminRepo := newMemAdminRepo()

	secret := []byte("test-secret")

	app := &application{
		config: config{
			addr: ":0",
			env:  "test",
			rateLimiter: ratelimiter.Config{
				Enabled: false,
			},
		},
		logger:        logger,
		rateLimiter:   ratelimiter.NewFixedWindowLimiter(100, time.Second),
		broker:        noopBroker{},
		menuRepo:      menuRepo,
		authService:   service.NewAuthService(customerRepo, adminRepo, secret, auth.TokenValidity, logger),
		orderService:  service.NewOrderService(orderRepo, menuRepo, revenueRepo, noopBroker{}, logger),
		reportService: service.NewReportService(orderRepo, revenueRepo, logger),
	}

	return app, menuRepo
}

type testClient struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
}

func newTestClient(t *testing.T, app *application) *testClient {
	t.Helper()

	server := httptest.NewServer(app.mount())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testClient{
		t:      t,
		server: server,
		client: &http.Client{Jar: jar},
	}
}

func (c *testClient) do(method, path string, body any) (*http.Response, map[string]json.RawMessage) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var envelope map[string]json.RawMessage
	_ = json.NewDecoder(resp.Body).Decode(&envelope)

	return resp, envelope
}

func registerCustomer(c *testClient, name, email string) {
	resp, _ := c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(c.t, http.StatusCreated, resp.StatusCode)
}

func registerAdmin(c *testClient, name, email string) {
	resp, _ := c.do(http.MethodPost, "/api/v1/admin/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(c.t, http.StatusCreated, resp.StatusCode)
}

func seedMenuItem(t *testing.T, menuRepo *memMenuRepo, name string, price float64, available bool) primitive.ObjectID {
	t.Helper()

	item := &domain.MenuItem{
		Name:      name,
		Price:     price,
		Category:  "beverages",
		Available: available,
	}
	require.NoError(t, menuRepo.Create(context.Background(), item))
	return item.ID
}

func placeOrderPayload(itemID primitive.ObjectID, qty int) map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"menu_item_id": itemID.Hex(), "quantity": qty},
		},
		"payment_method":  "upi",
		"payment_details": map[string]string{"upi_id": "student@upi"},
	}
}

func TestOrderFlowEndToEnd(t *testing.T) {
	app, menuRepo := newTestApplication(t)
	teaID := seedMenuItem(t, menuRepo, "Tea", 15, true)

	customer := newTestClient(t, app)
	registerCustomer(customer, "Priya", "priya@svce.ac.in")

	admin := newTestClient(t, app)
	registerAdmin(admin, "Manager", "manager@svce.ac.in")

	// place: 2x Tea at 15 + 5% tax = 31.50
	resp, envelope := customer.do(http.MethodPost, "/api/v1/orders", placeOrderPayload(teaID, 2))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var placed OrderResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &placed))
	assert.Equal(t, 31.50, placed.Total)
	assert.Equal(t, "ORD0001", placed.OrderNumber)
	assert.Equal(t, domain.StatusPlaced, placed.Status)

	orderPath := fmt.Sprintf("/api/v1/admin/orders/%s/status", placed.ID.Hex())

	for _, status := range []string{"preparing", "ready", "completed"} {
		resp, envelope := admin.do(http.MethodPut, orderPath, map[string]string{"status": status})
		require.Equal(t, http.StatusOK, resp.StatusCode, "transition to %s", status)

		var updated OrderResponse
		require.NoError(t, json.Unmarshal(envelope["data"], &updated))
		assert.Equal(t, domain.OrderStatus(status), updated.Status)
	}

	// revenue recorded exactly once
	resp, envelope = admin.do(http.MethodGet, "/api/v1/admin/reports/revenue", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report service.RevenueReport
	require.NoError(t, json.Unmarshal(envelope["data"], &report))
	assert.Equal(t, 31.50, report.TotalRevenue)
	assert.Len(t, report.RevenueHistory, 1)

	// completed is terminal
	resp, _ = admin.do(http.MethodPut, orderPath, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCustomerTokenRejectedOnAdminRoutes(t *testing.T) {
	app, _ := newTestApplication(t)

	customer := newTestClient(t, app)
	registerCustomer(customer, "Priya", "priya@svce.ac.in")

	resp, _ := customer.do(http.MethodGet, "/api/v1/admin/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = customer.do(http.MethodGet, "/api/v1/admin/reports/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOrderOwnership(t *testing.T) {
	app, menuRepo := newTestApplication(t)
	teaID := seedMenuItem(t, menuRepo, "Tea", 15, true)

	owner := newTestClient(t, app)
	registerCustomer(owner, "Priya", "priya@svce.ac.in")

	resp, envelope := owner.do(http.MethodPost, "/api/v1/orders", placeOrderPayload(teaID, 1))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var placed OrderResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &placed))

	orderPath := "/api/v1/orders/" + placed.ID.Hex()

	// owner can read it
	resp, _ = owner.do(http.MethodGet, orderPath, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// another customer cannot
	other := newTestClient(t, app)
	registerCustomer(other, "Rahul", "rahul@svce.ac.in")

	resp, _ = other.do(http.MethodGet, orderPath, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// an admin can
	admin := newTestClient(t, app)
	registerAdmin(admin, "Manager", "manager@svce.ac.in")

	resp, _ = admin.do(http.MethodGet, orderPath, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMenuVisibility(t *testing.T) {
	app, menuRepo := newTestApplication(t)
	seedMenuItem(t, menuRepo, "Tea", 15, true)
	seedMenuItem(t, menuRepo, "Seasonal Special", 50, false)

	public := newTestClient(t, app)

	resp, envelope := public.do(http.MethodGet, "/api/v1/menu", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []domain.MenuItem
	require.NoError(t, json.Unmarshal(envelope["data"], &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Tea", items[0].Name)

	admin := newTestClient(t, app)
	registerAdmin(admin, "Manager", "manager@svce.ac.in")

	resp, envelope = admin.do(http.MethodGet, "/api/v1/admin/menu", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.Unmarshal(envelope["data"], &items))
	assert.Len(t, items, 2)
}

func TestUnauthenticatedOrderRejected(t *testing.T) {
	app, menuRepo := newTestApplication(t)
	teaID := seedMenuItem(t, menuRepo, "Tea", 15, true)

	anon := newTestClient(t, app)

	resp, _ := anon.do(http.MethodPost, "/api/v1/orders", placeOrderPayload(teaID, 1))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
