// Package cart maintains the line items being assembled for purchase in the
// active session. The cart is session-scoped only: it is not persisted and
// starts empty on every process start.
package cart

import (
	"log/slog"
	"sync"

	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
	"github.com/bhukyapavithra/Smart-Dairy-farm/pubsub"
)

// Store holds an ordered list of line items, at most one per product id.
// Quantities are clipped to [1, product stock]; over-quantity requests are
// silently truncated rather than rejected.
type Store struct {
	bus *pubsub.Broadcaster[domain.CartTotals]
	log *slog.Logger

	mu    sync.RWMutex
	items []domain.CartItem
}

func NewStore() *Store {
	return &Store{
		bus: pubsub.New[domain.CartTotals](),
		log: slog.Default().With("component", "cart"),
	}
}

// Subscribe registers fn for every mutation; it receives the fresh totals.
func (s *Store) Subscribe(fn func(domain.CartTotals)) func() {
	return s.bus.Subscribe(fn)
}

// Add puts quantity units of product in the cart, merging into an existing
// line for the same product id. The resulting quantity is clipped to the
// product's available stock; a product with no stock at all is not added.
func (s *Store) Add(product domain.Product, quantity int) {
	if product.Quantity < 1 {
		s.log.Debug("ignoring add of out-of-stock product", "product_id", product.ID)
		return
	}

	s.mu.Lock()
	if i := s.indexLocked(product.ID); i >= 0 {
		s.items[i].Quantity = clip(s.items[i].Quantity+quantity, product.Quantity)
	} else {
		s.items = append(s.items, domain.CartItem{
			Product:  product,
			Quantity: clip(quantity, product.Quantity),
		})
	}
	totals := s.totalsLocked()
	s.mu.Unlock()

	s.bus.Publish(totals)
}

// UpdateQuantity sets the quantity of an existing line directly, clipped to
// the product's stock. A value below one removes the line: a cart never
// holds a zero-quantity item. Unknown product ids are a no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	i := s.indexLocked(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	if quantity < 1 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	} else {
		s.items[i].Quantity = clip(quantity, s.items[i].Product.Quantity)
	}
	totals := s.totalsLocked()
	s.mu.Unlock()

	s.bus.Publish(totals)
}

// Remove deletes the line for productID if present.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	i := s.indexLocked(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	totals := s.totalsLocked()
	s.mu.Unlock()

	s.bus.Publish(totals)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	totals := s.totalsLocked()
	s.mu.Unlock()

	s.bus.Publish(totals)
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Totals recomputes the derived counts on every call.
func (s *Store) Totals() domain.CartTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalsLocked()
}

func (s *Store) totalsLocked() domain.CartTotals {
	var t domain.CartTotals
	for _, item := range s.items {
		t.ItemCount += item.Quantity
		t.PriceTotal += item.Subtotal()
	}
	return t
}

func (s *Store) indexLocked(productID string) int {
	for i, item := range s.items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func clip(quantity, stock int) int {
	if quantity < 1 {
		return 1
	}
	if quantity > stock {
		return stock
	}
	return quantity
}
