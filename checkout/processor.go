package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Processor is the payment capability behind order submission. Swapping the
// mock for a real gateway client requires no flow change.
type Processor interface {
	Charge(ctx context.Context, amount float64, method PaymentMethod) (paymentID string, err error)
}

// MockProcessor stands in for a payment gateway: every charge succeeds after
// a fixed delay, long enough for a view to show its submitting state.
type MockProcessor struct {
	// Delay models the gateway round trip. Zero means no wait.
	Delay time.Duration
}

func (m *MockProcessor) Charge(ctx context.Context, _ float64, _ PaymentMethod) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return uuid.New().String(), nil
}
