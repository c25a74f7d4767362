package catalog

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
)

//go:embed seeddata.yaml
var seedYAML []byte

// Seed is the demo dataset that stands in for a real product API.
type Seed struct {
	Products []domain.Product
	Farmers  []domain.Farmer
	Reviews  []domain.Review
}

type seedFile struct {
	Products []struct {
		ID             string  `yaml:"id"`
		Name           string  `yaml:"name"`
		Description    string  `yaml:"description"`
		Price          float64 `yaml:"price"`
		Quantity       int     `yaml:"quantity"`
		Unit           string  `yaml:"unit"`
		Category       string  `yaml:"category"`
		ImageURL       string  `yaml:"image_url"`
		FarmerID       string  `yaml:"farmer_id"`
		FarmerName     string  `yaml:"farmer_name"`
		Featured       bool    `yaml:"featured"`
		CreatedDaysAgo int     `yaml:"created_days_ago"`
		UpdatedDaysAgo int     `yaml:"updated_days_ago"`
	} `yaml:"products"`
	Farmers []struct {
		ID           string  `yaml:"id"`
		FarmName     string  `yaml:"farm_name"`
		Lat          float64 `yaml:"lat"`
		Lng          float64 `yaml:"lng"`
		Description  string  `yaml:"description"`
		Founded      string  `yaml:"founded"`
		ContactPhone string  `yaml:"contact_phone"`
	} `yaml:"farmers"`
	Reviews []struct {
		ID             string `yaml:"id"`
		ProductID      string `yaml:"product_id"`
		CustomerID     string `yaml:"customer_id"`
		CustomerName   string `yaml:"customer_name"`
		Rating         int    `yaml:"rating"`
		Comment        string `yaml:"comment"`
		CreatedDaysAgo int    `yaml:"created_days_ago"`
	} `yaml:"reviews"`
}

// LoadSeed parses the embedded dataset. Timestamps in the file are relative
// day offsets so the demo data always looks recent.
func LoadSeed() (Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return Seed{}, fmt.Errorf("failed to parse seed data: %w", err)
	}

	now := time.Now()
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }

	s := Seed{}
	for _, p := range f.Products {
		s.Products = append(s.Products, domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Quantity:    p.Quantity,
			Unit:        p.Unit,
			Category:    domain.Category(p.Category),
			ImageURL:    p.ImageURL,
			FarmerID:    p.FarmerID,
			FarmerName:  p.FarmerName,
			IsFeatured:  p.Featured,
			CreatedAt:   daysAgo(p.CreatedDaysAgo),
			UpdatedAt:   daysAgo(p.UpdatedDaysAgo),
		})
	}
	for _, fm := range f.Farmers {
		s.Farmers = append(s.Farmers, domain.Farmer{
			ID:           fm.ID,
			FarmName:     fm.FarmName,
			Latitude:     fm.Lat,
			Longitude:    fm.Lng,
			Description:  fm.Description,
			Founded:      fm.Founded,
			ContactPhone: fm.ContactPhone,
		})
	}
	for _, r := range f.Reviews {
		s.Reviews = append(s.Reviews, domain.Review{
			ID:           r.ID,
			ProductID:    r.ProductID,
			CustomerID:   r.CustomerID,
			CustomerName: r.CustomerName,
			Rating:       r.Rating,
			Comment:      r.Comment,
			CreatedAt:    daysAgo(r.CreatedDaysAgo),
		})
	}
	return s, nil
}
