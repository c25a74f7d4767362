package domain

import "time"

// Role separates the two sides of the marketplace. A user has exactly one
// role for the lifetime of the account.
type Role string

const (
	RoleFarmer   Role = "farmer"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleFarmer || r == RoleCustomer
}

func (r Role) String() string {
	return string(r)
}

// User is the authenticated identity. The role is tracked next to it in the
// session rather than on the struct so the persisted layout stays the two
// independent entries the storage contract requires.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// FarmerProfile is the farm-facing profile attached to a farmer account.
type FarmerProfile struct {
	FarmName     string
	Latitude     float64
	Longitude    float64
	Description  string
	Founded      string
	ContactPhone string
	ProfileImage string
}

// CustomerProfile is the buyer-facing profile attached to a customer account.
type CustomerProfile struct {
	Address                string
	PreferredPaymentMethod string
	DeliveryInstructions   string
}
