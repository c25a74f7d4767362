// Package catalog supplies the product and farmer records the rest of the
// marketplace reads. Lookups by id, filtered listings, and the farmer-side
// product management operations all go through the Repository port; the
// cart and checkout treat it as read-only.
package catalog

import (
	"context"

	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
)

// Filter narrows a product listing. Zero values mean "no constraint"; a
// fresh call re-executes the filter against current data.
type Filter struct {
	// Query matches case-insensitively against name, description and
	// farmer name.
	Query string
	// Category restricts to one category when set.
	Category domain.Category
	// FeaturedOnly keeps only featured products.
	FeaturedOnly bool
	// FarmerID restricts to one farm's products when set.
	FarmerID string
}

// Repository is the catalog port. Lookups return domain.ErrNotFound when
// the id resolves to nothing.
type Repository interface {
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListProducts(ctx context.Context, f Filter) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	SetFeatured(ctx context.Context, id string, featured bool) error

	GetFarmer(ctx context.Context, id string) (domain.Farmer, error)
	ListFarmers(ctx context.Context) ([]domain.Farmer, error)

	Close() error
}
