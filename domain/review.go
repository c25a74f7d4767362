package domain

import "time"

const (
	// MinRating and MaxRating bound the star scale. A zero-star submission
	// is a validation failure, not a valid "no opinion" value.
	MinRating = 1
	MaxRating = 5
)

// Review is a customer rating attached to a product.
type Review struct {
	ID           string
	ProductID    string
	CustomerID   string
	CustomerName string
	Rating       int
	Comment      string
	CreatedAt    time.Time
}
