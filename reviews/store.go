// Package reviews holds customer product ratings and the per-product
// aggregates the catalog views display next to each listing.
package reviews

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
)

// Store is an in-memory review book keyed by product.
type Store struct {
	mu      sync.RWMutex
	reviews []domain.Review
}

func NewStore() *Store {
	return &Store{}
}

// Seed bulk-loads demo reviews.
func (s *Store) Seed(reviews []domain.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, reviews...)
}

// Add validates and records a review, filling in id and timestamp when the
// caller left them zero. A zero-star rating is a validation failure, not a
// neutral vote.
func (s *Store) Add(review domain.Review) (domain.Review, error) {
	if review.ProductID == "" {
		return domain.Review{}, domain.NewValidationError("productId", "is required")
	}
	if review.Rating < domain.MinRating || review.Rating > domain.MaxRating {
		return domain.Review{}, domain.NewValidationError("rating", "must be between 1 and 5")
	}
	if strings.TrimSpace(review.Comment) == "" {
		return domain.Review{}, domain.NewValidationError("comment", "is required")
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, review)
	return review, nil
}

// ListByProduct returns the product's reviews, newest first.
func (s *Store) ListByProduct(productID string) []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Review
	for _, r := range s.reviews {
		if r.ProductID == productID {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Average returns the mean rating for a product and how many reviews it has.
// A product without reviews averages zero.
func (s *Store) Average(productID string) (float64, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum, count := 0, 0
	for _, r := range s.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return float64(sum) / float64(count), count
}
