package service

import (
	"context"
	"sync"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/Saipoo/foodorder/internal/queue"
	"github.com/Saipoo/foodorder/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. The order fake mirrors the CAS semantics of the
// mongo implementation, including ErrStaleStatus on a lost race.

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*domain.Order
	seq    int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[primitive.ObjectID]*domain.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
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

func (r *fakeOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *fakeOrderRepo) ListByCustomer(_ context.Context, customerID primitive.ObjectID) ([]domain.Order, error) {
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

func (r *fakeOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) ListSince(_ context.Context, since time.Time) ([]domain.Order, error) {
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

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to domain.OrderStatus) (*domain.Order, error) {
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

func (r *fakeOrderRepo) NextOrderNumber(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	return r.seq, nil
}

func (r *fakeOrderRepo) CountByStatus(_ context.Context, statuses ...domain.OrderStatus) (int64, error) {
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

type fakeMenuRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*domain.MenuItem
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: make(map[primitive.ObjectID]*domain.MenuItem)}
}

func (r *fakeMenuRepo) Create(_ context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeMenuRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *fakeMenuRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.MenuItem, error) {
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

func (r *fakeMenuRepo) List(_ context.Context, availableOnly bool) ([]domain.MenuItem, error) {
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

func (r *fakeMenuRepo) Update(_ context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return repo.ErrNotFound
	}
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeMenuRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeRevenueRepo struct {
	mu      sync.Mutex
	entries []domain.RevenueEntry
	byOrder map[primitive.ObjectID]bool
}

func newFakeRevenueRepo() *fakeRevenueRepo {
	return &fakeRevenueRepo{byOrder: make(map[primitive.ObjectID]bool)}
}

func (r *fakeRevenueRepo) Create(_ context.Context, entry *domain.RevenueEntry) error {
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

func (r *fakeRevenueRepo) ListAll(_ context.Context) ([]domain.RevenueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.RevenueEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[primitive.ObjectID]*domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[primitive.ObjectID]*domain.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
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

func (r *fakeCustomerRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
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

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]*domain.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[primitive.ObjectID]*domain.Admin)}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
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

func (r *fakeAdminRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.admins[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
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

// fakeBroker records published messages; failing lets tests check that
// notification errors never surface.
type fakeBroker struct {
	mu        sync.Mutex
	published [][]byte
	failing   bool
}

func (b *fakeBroker) Publish(_ context.Context, _ string, message []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failing {
		return context.DeadlineExceeded
	}
	b.published = append(b.published, message)
	return nil
}

func (b *fakeBroker) Subscribe(_ context.Context, _ string, _ queue.MessageHandler) error {
	return nil
}

func (b *fakeBroker) Close() error { return nil }

func (b *fakeBroker) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.published)
}
