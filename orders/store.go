// Package orders keeps the order history produced by checkouts: customers
// see their past purchases, farmers work through incoming orders.
package orders

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
	"github.com/bhukyapavithra/Smart-Dairy-farm/pubsub"
)

// Filter narrows a farmer's order listing. Zero values mean no constraint.
type Filter struct {
	// Status keeps only orders in that status.
	Status domain.OrderStatus
	// Query matches case-insensitively against order id and customer name.
	Query string
	// CreatedAfter keeps orders placed at or after the given instant; the
	// view derives it for its today / this week / this month shortcuts.
	CreatedAfter time.Time
}

// Store is an in-memory order book, newest first.
type Store struct {
	bus *pubsub.Broadcaster[domain.Order]

	mu     sync.RWMutex
	orders []domain.Order
}

func NewStore() *Store {
	return &Store{bus: pubsub.New[domain.Order]()}
}

// Subscribe registers fn for every created or updated order.
func (s *Store) Subscribe(fn func(domain.Order)) func() {
	return s.bus.Subscribe(fn)
}

// Create records a new order, filling in id, status and timestamp when the
// caller left them zero.
func (s *Store) Create(order domain.Order) domain.Order {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.orders = append([]domain.Order{order}, s.orders...)
	s.mu.Unlock()

	s.bus.Publish(order)
	return order
}

// Seed bulk-loads demo orders without notifications.
func (s *Store) Seed(orders []domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, orders...)
}

// Get returns the order with the given id.
func (s *Store) Get(id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

// ListByCustomer returns the customer's orders, newest first.
func (s *Store) ListByCustomer(customerID string) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Order
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			result = append(result, o)
		}
	}
	return result
}

// ListByFarmer returns the farm's orders matching the filter, newest first.
func (s *Store) ListByFarmer(farmerID string, f Filter) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Order
	for _, o := range s.orders {
		if o.FarmerID != farmerID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if !f.CreatedAfter.IsZero() && o.CreatedAt.Before(f.CreatedAfter) {
			continue
		}
		if f.Query != "" {
			q := strings.ToLower(f.Query)
			if !strings.Contains(strings.ToLower(o.ID), q) &&
				!strings.Contains(strings.ToLower(o.CustomerName), q) {
				continue
			}
		}
		result = append(result, o)
	}
	return result
}

// UpdateStatus moves an order to a new status. Completing an order stamps
// CompletedAt.
func (s *Store) UpdateStatus(id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return domain.NewValidationError("status", "is unknown")
	}

	s.mu.Lock()
	var updated *domain.Order
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			if status == domain.OrderStatusCompleted && s.orders[i].CompletedAt == nil {
				now := time.Now()
				s.orders[i].CompletedAt = &now
			}
			o := s.orders[i]
			updated = &o
			break
		}
	}
	s.mu.Unlock()

	if updated == nil {
		return domain.ErrNotFound
	}
	s.bus.Publish(*updated)
	return nil
}
