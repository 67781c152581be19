package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.CartRepository          = (*CartRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
	_ repository.SellerRequestRepository = (*SellerRequestRepo)(nil)
)

// CartRepo líneas de carrito en memoria.
type CartRepo struct {
	s    *Store
	inTx bool
}

// NewCartRepository construye el repositorio del carrito.
func NewCartRepository(s *Store) *CartRepo { return &CartRepo{s: s} }

func (r *CartRepo) AddOrIncrement(_ context.Context, userID, productID string, maxQty int) (*entity.CartItem, error) {
	defer r.s.guard(r.inTx)()
	now := r.s.now()
	for _, it := range r.s.data.cart {
		if it.UserID == userID && it.ProductID == productID {
			if it.Quantity >= maxQty {
				return nil, domain.ErrValidation
			}
			it.Quantity++
			it.Version++
			it.UpdatedAt = now
			cp := *it
			return &cp, nil
		}
	}
	it := &entity.CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.data.cart[it.ID] = it
	r.s.track(it.ID)
	cp := *it
	return &cp, nil
}

func (r *CartRepo) GetByID(_ context.Context, id string) (*entity.CartItem, error) {
	defer r.s.guard(r.inTx)()
	it, ok := r.s.data.cart[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *CartRepo) GetLine(_ context.Context, id string) (*entity.CartLine, error) {
	defer r.s.guard(r.inTx)()
	it, ok := r.s.data.cart[id]
	if !ok {
		return nil, nil
	}
	return r.s.cartLine(it), nil
}

func (r *CartRepo) ListLinesByUser(_ context.Context, userID string) ([]*entity.CartLine, error) {
	defer r.s.guard(r.inTx)()
	return r.s.cartLines(userID), nil
}

// ListLinesByUserForUpdate dentro de una transacción el lock del store ya aísla las filas.
func (r *CartRepo) ListLinesByUserForUpdate(_ context.Context, userID string) ([]*entity.CartLine, error) {
	defer r.s.guard(r.inTx)()
	return r.s.cartLines(userID), nil
}

func (r *CartRepo) UpdateQuantity(_ context.Context, id string, quantity, expectedVersion int) error {
	defer r.s.guard(r.inTx)()
	it, ok := r.s.data.cart[id]
	if !ok {
		return domain.ErrConflict
	}
	if it.Version != expectedVersion {
		return domain.ErrConflict
	}
	it.Quantity = quantity
	it.Version++
	it.UpdatedAt = r.s.now()
	return nil
}

func (r *CartRepo) Delete(_ context.Context, id string) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.data.cart[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.data.cart, id)
	return nil
}

func (r *CartRepo) DeleteByUser(_ context.Context, userID string) error {
	defer r.s.guard(r.inTx)()
	for id, it := range r.s.data.cart {
		if it.UserID == userID {
			delete(r.s.data.cart, id)
		}
	}
	return nil
}

func (s *Store) cartLines(userID string) []*entity.CartLine {
	var ids []string
	for id, it := range s.data.cart {
		if it.UserID == userID {
			ids = append(ids, id)
		}
	}
	s.sortByInsertion(ids, false)
	out := make([]*entity.CartLine, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.cartLine(s.data.cart[id]))
	}
	return out
}

func (s *Store) cartLine(it *entity.CartItem) *entity.CartLine {
	l := &entity.CartLine{CartItem: *it}
	if p, ok := s.data.products[it.ProductID]; ok {
		l.ProductName = p.Name
		l.UnitPrice = p.Price
		l.StockAmount = p.StockAmount
	}
	l.ImageURL = s.firstImage(it.ProductID)
	return l
}

// OrderRepo pedidos en memoria.
type OrderRepo struct {
	s    *Store
	inTx bool
}

// NewOrderRepository construye el repositorio de pedidos.
func NewOrderRepository(s *Store) *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	defer r.s.guard(r.inTx)()
	for _, existing := range r.s.data.orders {
		if existing.OrderCode == o.OrderCode {
			return domain.ErrDuplicate
		}
	}
	cp := *o
	r.s.data.orders[o.ID] = &cp
	r.s.track(o.ID)
	return nil
}

func (r *OrderRepo) CreateItem(_ context.Context, it *entity.OrderItem) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.data.orders[it.OrderID]; !ok {
		return domain.ErrNotFound
	}
	cp := *it
	r.s.data.orderItems[it.ID] = &cp
	r.s.track(it.ID)
	return nil
}

func (r *OrderRepo) GetByCode(_ context.Context, code string) (*entity.Order, error) {
	defer r.s.guard(r.inTx)()
	for _, o := range r.s.data.orders {
		if o.OrderCode == code {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *OrderRepo) ListItems(_ context.Context, orderID string) ([]*entity.OrderItemView, error) {
	defer r.s.guard(r.inTx)()
	return r.s.itemsOf(orderID), nil
}

func (r *OrderRepo) ListSummariesByUser(_ context.Context, userID string) ([]*entity.OrderSummary, error) {
	defer r.s.guard(r.inTx)()
	var ids []string
	for id, o := range r.s.data.orders {
		if o.UserID == userID {
			ids = append(ids, id)
		}
	}
	r.s.sortByInsertion(ids, true)
	out := make([]*entity.OrderSummary, 0, len(ids))
	for _, id := range ids {
		o := r.s.data.orders[id]
		sum := &entity.OrderSummary{OrderCode: o.OrderCode, Address: o.Address, CreatedAt: o.CreatedAt, TotalPrice: decimal.Zero}
		products := map[string]struct{}{}
		for _, it := range r.s.itemsOf(o.ID) {
			sum.TotalPrice = sum.TotalPrice.Add(it.Subtotal())
			sum.TotalQuantity += it.Quantity
			products[it.ProductID] = struct{}{}
		}
		sum.TotalProducts = len(products)
		out = append(out, sum)
	}
	return out, nil
}

func (s *Store) itemsOf(orderID string) []*entity.OrderItemView {
	var ids []string
	for id, it := range s.data.orderItems {
		if it.OrderID == orderID {
			ids = append(ids, id)
		}
	}
	s.sortByInsertion(ids, false)
	out := make([]*entity.OrderItemView, 0, len(ids))
	for _, id := range ids {
		v := &entity.OrderItemView{OrderItem: *s.data.orderItems[id]}
		if p, ok := s.data.products[v.ProductID]; ok {
			v.ProductName = p.Name
		}
		out = append(out, v)
	}
	return out
}

// SellerRequestRepo solicitudes de vendedor en memoria.
type SellerRequestRepo struct {
	s    *Store
	inTx bool
}

// NewSellerRequestRepository construye el repositorio de solicitudes.
func NewSellerRequestRepository(s *Store) *SellerRequestRepo { return &SellerRequestRepo{s: s} }

func (r *SellerRequestRepo) Create(_ context.Context, req *entity.SellerRequest) error {
	defer r.s.guard(r.inTx)()
	for _, existing := range r.s.data.sellerRequests {
		if existing.UserID == req.UserID && existing.Pending() {
			return domain.ErrDuplicate
		}
	}
	cp := *req
	r.s.data.sellerRequests[req.ID] = &cp
	r.s.track(req.ID)
	return nil
}

func (r *SellerRequestRepo) GetPendingByUser(_ context.Context, userID string) (*entity.SellerRequest, error) {
	defer r.s.guard(r.inTx)()
	for _, req := range r.s.data.sellerRequests {
		if req.UserID == userID && req.Pending() {
			cp := *req
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *SellerRequestRepo) Resolve(_ context.Context, req *entity.SellerRequest) error {
	defer r.s.guard(r.inTx)()
	existing, ok := r.s.data.sellerRequests[req.ID]
	if !ok || !existing.Pending() {
		return domain.ErrNotFound
	}
	existing.IsApproved = req.IsApproved
	existing.ResolvedAt = req.ResolvedAt
	return nil
}

func (r *SellerRequestRepo) ListPending(_ context.Context) ([]*entity.SellerRequestView, error) {
	defer r.s.guard(r.inTx)()
	var ids []string
	for id, req := range r.s.data.sellerRequests {
		if req.Pending() {
			ids = append(ids, id)
		}
	}
	r.s.sortByInsertion(ids, false)
	out := make([]*entity.SellerRequestView, 0, len(ids))
	for _, id := range ids {
		v := &entity.SellerRequestView{SellerRequest: *r.s.data.sellerRequests[id]}
		if u, ok := r.s.data.users[v.UserID]; ok {
			v.UserEmail = u.Email
			v.UserName = u.FullName()
		}
		out = append(out, v)
	}
	return out, nil
}
