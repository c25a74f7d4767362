package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
)

// Credentials is the registration draft. Password checks belong to a real
// backend; the store only validates the required profile fields.
type Credentials struct {
	Name  string
	Email string
	Phone string
}

// Authenticator is the backend capability behind login and register.
// Swapping the mock for a real API client requires no store change.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.User, domain.Role, error)
	Register(ctx context.Context, draft Credentials, role domain.Role) (domain.User, error)
}

// MockAuthenticator stands in for the network: every call succeeds after a
// fixed delay. The delay is not cancellable; an abandoned call still
// resolves and the store discards its result if it was superseded.
type MockAuthenticator struct {
	// Delay models the network round trip. Zero means no wait.
	Delay time.Duration
}

// Login derives the role from the email: addresses containing "farmer" get
// a farmer session, everything else a customer one. The identity is
// fabricated to match the demo dataset.
func (m *MockAuthenticator) Login(_ context.Context, email, _ string) (domain.User, domain.Role, error) {
	m.wait()

	role := domain.RoleCustomer
	name := "Jane Customer"
	if strings.Contains(email, "farmer") {
		role = domain.RoleFarmer
		name = "John Farmer"
	}

	return domain.User{
		ID:        "123",
		Name:      name,
		Email:     email,
		Phone:     "555-123-4567",
		CreatedAt: time.Now(),
	}, role, nil
}

// Register fabricates a fresh identity for the draft.
func (m *MockAuthenticator) Register(_ context.Context, draft Credentials, _ domain.Role) (domain.User, error) {
	m.wait()

	return domain.User{
		ID:        uuid.New().String(),
		Name:      draft.Name,
		Email:     draft.Email,
		Phone:     draft.Phone,
		CreatedAt: time.Now(),
	}, nil
}

func (m *MockAuthenticator) wait() {
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
}
