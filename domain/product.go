package domain

import "time"

// Category groups products on the storefront.
type Category string

const (
	CategoryMilk   Category = "milk"
	CategoryCheese Category = "cheese"
	CategoryYogurt Category = "yogurt"
	CategoryButter Category = "butter"
	CategoryOther  Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMilk, CategoryCheese, CategoryYogurt, CategoryButter, CategoryOther:
		return true
	}
	return false
}

// Product is a catalog record. Quantity is the stock available for sale and
// is the upper bound for cart line items referencing this product.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Quantity    int
	Unit        string
	Category    Category
	ImageURL    string
	FarmerID    string
	FarmerName  string
	IsFeatured  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Farmer is the owning farm behind a set of products.
type Farmer struct {
	ID           string
	FarmName     string
	Latitude     float64
	Longitude    float64
	Description  string
	Founded      string
	ContactPhone string
}
