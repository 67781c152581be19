// Package memory implementa los puertos de persistencia en memoria (desarrollo local y tests).
// Las transacciones toman el lock del store durante todo el callback y restauran una copia si fallan.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/mrvekratl/BE124/internal/domain/entity"
)

// Store contiene todas las tablas en memoria.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	data tables
}

type tables struct {
	seq            int64
	order          map[string]int64 // orden de inserción por id
	users          map[string]*entity.User
	roles          []entity.RoleRecord
	categories     map[string]*entity.Category
	discounts      map[string]*entity.Discount
	products       map[string]*entity.Product
	images         map[string]*entity.ProductImage
	comments       map[string]*entity.ProductComment
	cart           map[string]*entity.CartItem
	orders         map[string]*entity.Order
	orderItems     map[string]*entity.OrderItem
	contacts       map[string]*entity.ContactForm
	sellerRequests map[string]*entity.SellerRequest
}

// Option configura el Store.
type Option func(*Store)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithoutRole omite un rol de la tabla de referencia (simula datos de referencia incompletos).
func WithoutRole(name string) Option {
	return func(s *Store) {
		roles := s.data.roles[:0]
		for _, r := range s.data.roles {
			if r.Name != name {
				roles = append(roles, r)
			}
		}
		s.data.roles = roles
	}
}

// New crea un store vacío con la tabla roles sembrada.
func New(opts ...Option) *Store {
	s := &Store{
		now: time.Now,
		data: tables{
			order:          map[string]int64{},
			users:          map[string]*entity.User{},
			categories:     map[string]*entity.Category{},
			discounts:      map[string]*entity.Discount{},
			products:       map[string]*entity.Product{},
			images:         map[string]*entity.ProductImage{},
			comments:       map[string]*entity.ProductComment{},
			cart:           map[string]*entity.CartItem{},
			orders:         map[string]*entity.Order{},
			orderItems:     map[string]*entity.OrderItem{},
			contacts:       map[string]*entity.ContactForm{},
			sellerRequests: map[string]*entity.SellerRequest{},
			roles: []entity.RoleRecord{
				{ID: entity.RoleAdmin, Name: entity.RoleNameAdmin},
				{ID: entity.RoleSeller, Name: entity.RoleNameSeller},
				{ID: entity.RoleBuyer, Name: entity.RoleNameBuyer},
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeedDiscount agrega un descuento de referencia.
func (s *Store) SeedDiscount(d *entity.Discount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *d
	s.data.discounts[d.ID] = &c
	s.track(d.ID)
}

// guard toma el lock salvo que el llamador ya lo tenga (repos atados a una transacción).
func (s *Store) guard(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) track(id string) {
	if _, ok := s.data.order[id]; ok {
		return
	}
	s.data.seq++
	s.data.order[id] = s.data.seq
}

// sortByInsertion ordena ids por orden de inserción; desc invierte.
func (s *Store) sortByInsertion(ids []string, desc bool) {
	sort.Slice(ids, func(i, j int) bool {
		if desc {
			return s.data.order[ids[i]] > s.data.order[ids[j]]
		}
		return s.data.order[ids[i]] < s.data.order[ids[j]]
	})
}

func (s *Store) snapshot() tables {
	t := s.data
	t.order = cloneMap(s.data.order)
	t.users = clonePtrMap(s.data.users)
	t.roles = append([]entity.RoleRecord(nil), s.data.roles...)
	t.categories = clonePtrMap(s.data.categories)
	t.discounts = clonePtrMap(s.data.discounts)
	t.products = clonePtrMap(s.data.products)
	t.images = clonePtrMap(s.data.images)
	t.comments = clonePtrMap(s.data.comments)
	t.cart = clonePtrMap(s.data.cart)
	t.orders = clonePtrMap(s.data.orders)
	t.orderItems = clonePtrMap(s.data.orderItems)
	t.contacts = clonePtrMap(s.data.contacts)
	t.sellerRequests = clonePtrMap(s.data.sellerRequests)
	return t
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clonePtrMap[K comparable, V any](m map[K]*V) map[K]*V {
	out := make(map[K]*V, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
