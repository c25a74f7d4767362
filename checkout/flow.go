// Package checkout walks a purchase from the delivery form through payment
// to confirmation. A Flow is per-purchase: create one when the customer
// enters checkout and discard it after confirmation.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bhukyapavithra/Smart-Dairy-farm/cart"
	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
	"github.com/bhukyapavithra/Smart-Dairy-farm/orders"
	"github.com/bhukyapavithra/Smart-Dairy-farm/pubsub"
)

// ErrIllegalTransition is returned when an operation does not apply to the
// flow's current stage, e.g. paying before the delivery form is done.
var ErrIllegalTransition = errors.New("illegal checkout stage transition")

// Stage is how far the purchase has progressed.
type Stage string

const (
	StageDelivery  Stage = "delivery"
	StagePayment   Stage = "payment"
	StageConfirmed Stage = "confirmed"
)

func canTransitionTo(from, to Stage) bool {
	switch to {
	case StagePayment:
		return from == StageDelivery
	case StageConfirmed:
		return from == StagePayment
	case StageDelivery:
		return from == StagePayment
	}
	return false
}

// DeliveryOption selects home delivery or farm pickup.
type DeliveryOption string

const (
	OptionDelivery DeliveryOption = "delivery"
	OptionPickup   DeliveryOption = "pickup"
)

// DeliveryInfo is the first checkout form.
type DeliveryInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	Zip     string
	Option  DeliveryOption
	Notes   string
}

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	MethodCash PaymentMethod = "cash"
	MethodCard PaymentMethod = "card"
	MethodBank PaymentMethod = "bank"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodCash || m == MethodCard || m == MethodBank
}

// PaymentInfo is the second checkout form.
type PaymentInfo struct {
	Method PaymentMethod
}

// Default delivery pricing. Orders at or above the threshold ship free.
const (
	DeliveryFee           = 5.00
	FreeDeliveryThreshold = 30.00
)

// Pricing tunes the delivery fee rule per deployment.
type Pricing struct {
	DeliveryFee           float64
	FreeDeliveryThreshold float64
}

func DefaultPricing() Pricing {
	return Pricing{DeliveryFee: DeliveryFee, FreeDeliveryThreshold: FreeDeliveryThreshold}
}

// Totals is the cost breakdown shown on the payment step.
type Totals struct {
	Subtotal    float64
	DeliveryFee float64
	Total       float64
}

// Flow carries one purchase through its stages. Methods are safe for
// concurrent use; only one payment submission can be in flight at a time.
type Flow struct {
	customer  domain.User
	cart      *cart.Store
	orders    *orders.Store
	processor Processor
	pricing   Pricing
	bus       *pubsub.Broadcaster[Stage]
	log       *slog.Logger

	mu         sync.Mutex
	stage      Stage
	delivery   DeliveryInfo
	submitting bool
	created    []domain.Order
}

// NewFlow starts a purchase for customer at the delivery stage with the
// default pricing.
func NewFlow(customer domain.User, cartStore *cart.Store, orderStore *orders.Store, processor Processor) *Flow {
	return NewFlowWithPricing(customer, cartStore, orderStore, processor, DefaultPricing())
}

// NewFlowWithPricing is NewFlow with a deployment-specific fee rule.
func NewFlowWithPricing(customer domain.User, cartStore *cart.Store, orderStore *orders.Store, processor Processor, pricing Pricing) *Flow {
	return &Flow{
		customer:  customer,
		cart:      cartStore,
		orders:    orderStore,
		processor: processor,
		pricing:   pricing,
		bus:       pubsub.New[Stage](),
		log:       slog.Default().With("component", "checkout"),
		stage:     StageDelivery,
	}
}

// Subscribe registers fn for every stage change.
func (f *Flow) Subscribe(fn func(Stage)) func() {
	return f.bus.Subscribe(fn)
}

// Stage returns the current stage.
func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// Delivery returns the submitted delivery form, zero before SubmitDelivery.
func (f *Flow) Delivery() DeliveryInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.delivery
}

// Totals prices the current cart. The delivery fee is waived once the
// subtotal reaches the free-delivery threshold.
func (f *Flow) Totals() Totals {
	subtotal := f.cart.Totals().PriceTotal
	fee := 0.0
	if subtotal > 0 && subtotal < f.pricing.FreeDeliveryThreshold {
		fee = f.pricing.DeliveryFee
	}
	return Totals{Subtotal: subtotal, DeliveryFee: fee, Total: subtotal + fee}
}

// SubmitDelivery validates the delivery form and advances to payment. On a
// validation failure the stage does not move and earlier form data is kept.
func (f *Flow) SubmitDelivery(info DeliveryInfo) error {
	if err := validateDelivery(info); err != nil {
		return err
	}

	f.mu.Lock()
	if !canTransitionTo(f.stage, StagePayment) {
		f.mu.Unlock()
		return ErrIllegalTransition
	}
	f.delivery = info
	f.stage = StagePayment
	f.mu.Unlock()

	f.bus.Publish(StagePayment)
	return nil
}

// Back returns from the payment step to the delivery form, keeping the form
// data for re-editing.
func (f *Flow) Back() error {
	f.mu.Lock()
	if f.submitting || !canTransitionTo(f.stage, StageDelivery) {
		f.mu.Unlock()
		return ErrIllegalTransition
	}
	f.stage = StageDelivery
	f.mu.Unlock()

	f.bus.Publish(StageDelivery)
	return nil
}

// SubmitPayment charges the customer and turns the cart into orders, one per
// distinct farmer. A second submission while one is in flight is refused.
// On success the cart is cleared and the flow is confirmed; on failure the
// flow stays at the payment stage for a retry.
func (f *Flow) SubmitPayment(ctx context.Context, info PaymentInfo) ([]domain.Order, error) {
	if !info.Method.Valid() {
		return nil, domain.NewValidationError("paymentMethod", "is unknown")
	}

	f.mu.Lock()
	if f.stage != StagePayment {
		f.mu.Unlock()
		return nil, ErrIllegalTransition
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, domain.ErrCheckoutInProgress
	}
	items := f.cart.Items()
	if len(items) == 0 {
		f.mu.Unlock()
		return nil, domain.NewValidationError("cart", "is empty")
	}
	f.submitting = true
	delivery := f.delivery
	f.mu.Unlock()

	totals := f.Totals()

	// The charge runs outside the lock so stage reads stay responsive.
	paymentID, err := f.processor.Charge(ctx, totals.Total, info.Method)

	if err != nil {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
		f.log.Warn("payment failed", "error", err)
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	created := f.placeOrders(items, delivery, info, totals)
	f.cart.Clear()

	f.mu.Lock()
	f.submitting = false
	f.created = created
	f.stage = StageConfirmed
	f.mu.Unlock()

	f.bus.Publish(StageConfirmed)
	f.log.Info("checkout confirmed",
		"customer_id", f.customer.ID,
		"orders", len(created),
		"payment_id", paymentID,
		"total", totals.Total)
	return created, nil
}

// Orders returns the orders placed by a confirmed flow, empty before that.
func (f *Flow) Orders() []domain.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := make([]domain.Order, len(f.created))
	copy(created, f.created)
	return created
}

// placeOrders groups the captured cart lines by farmer and records one order
// per farm. The delivery fee is carried by the first order only, so the sum
// of order totals matches what was charged.
func (f *Flow) placeOrders(items []domain.CartItem, delivery DeliveryInfo, payment PaymentInfo, totals Totals) []domain.Order {
	byFarmer := make(map[string][]domain.OrderItem)
	var farmerIDs []string
	for _, item := range items {
		id := item.Product.FarmerID
		if _, seen := byFarmer[id]; !seen {
			farmerIDs = append(farmerIDs, id)
		}
		byFarmer[id] = append(byFarmer[id], domain.OrderItem{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Product.Price,
			Subtotal:    item.Subtotal(),
		})
	}

	address := delivery.Address + ", " + delivery.City + " " + delivery.Zip
	if delivery.Option == OptionPickup {
		address = "Pickup at farm"
	}

	var created []domain.Order
	for i, farmerID := range farmerIDs {
		orderItems := byFarmer[farmerID]
		total := 0.0
		for _, it := range orderItems {
			total += it.Subtotal
		}
		if i == 0 {
			total += totals.DeliveryFee
		}
		created = append(created, f.orders.Create(domain.Order{
			CustomerID:      f.customer.ID,
			CustomerName:    f.customer.Name,
			FarmerID:        farmerID,
			Items:           orderItems,
			Total:           total,
			DeliveryAddress: address,
			PaymentMethod:   string(payment.Method),
		}))
	}
	return created
}

func validateDelivery(info DeliveryInfo) error {
	required := []struct {
		field, value string
	}{
		{"name", info.Name},
		{"email", info.Email},
		{"phone", info.Phone},
		{"address", info.Address},
		{"city", info.City},
		{"zip", info.Zip},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domain.NewValidationError(r.field, "is required")
		}
	}
	if info.Option != OptionDelivery && info.Option != OptionPickup {
		return domain.NewValidationError("deliveryOption", "is unknown")
	}
	return nil
}
