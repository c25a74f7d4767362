package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite keeps the catalog in a local database file so farmer-side edits
// survive restarts.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the database file at path and runs migrations.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not load migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// SeedIfEmpty loads the seed dataset on first run only.
func (s *SQLite) SeedIfEmpty(ctx context.Context, seed Seed) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, f := range seed.Farmers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO farmers (id, farm_name, lat, lng, description, founded, contact_phone)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			f.ID, f.FarmName, f.Latitude, f.Longitude, f.Description, f.Founded, f.ContactPhone,
		)
		if err != nil {
			return fmt.Errorf("failed to seed farmer %s: %w", f.ID, err)
		}
	}
	for _, p := range seed.Products {
		if err := insertProduct(ctx, tx, p); err != nil {
			return err
		}
	}

	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertProduct(ctx context.Context, db execer, p domain.Product) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO products
		 (id, name, description, price, quantity, unit, category, image_url,
		  farmer_id, farmer_name, featured, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Name, p.Description, p.Price, p.Quantity, p.Unit, string(p.Category),
		p.ImageURL, p.FarmerID, p.FarmerName, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
	}
	return nil
}

const productColumns = `id, name, description, price, quantity, unit, category,
	image_url, farmer_id, farmer_name, featured, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var p domain.Product
	var category string
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Unit,
		&category, &p.ImageURL, &p.FarmerID, &p.FarmerName, &p.IsFeatured,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	p.Category = domain.Category(category)
	return p, nil
}

func (s *SQLite) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to scan product: %w", err)
	}
	return p, nil
}

func (s *SQLite) ListProducts(ctx context.Context, f Filter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Category != "" {
		query += ` AND category = ` + arg(string(f.Category))
	}
	if f.FeaturedOnly {
		query += ` AND featured = 1`
	}
	if f.FarmerID != "" {
		query += ` AND farmer_id = ` + arg(f.FarmerID)
	}
	if f.Query != "" {
		like := arg("%" + f.Query + "%")
		query += ` AND (name LIKE ` + like + ` COLLATE NOCASE
			OR description LIKE ` + like + ` COLLATE NOCASE
			OR farmer_name LIKE ` + like + ` COLLATE NOCASE)`
	}
	query += ` ORDER BY CAST(id AS INTEGER), id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (s *SQLite) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.Name == "" {
		return domain.Product{}, domain.NewValidationError("name", "is required")
	}
	if !p.Category.Valid() {
		return domain.Product{}, domain.NewValidationError("category", "is unknown")
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := insertProduct(ctx, s.db, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *SQLite) UpdateProduct(ctx context.Context, p domain.Product) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = $1, description = $2, price = $3,
		 quantity = $4, unit = $5, category = $6, image_url = $7,
		 featured = $8, updated_at = $9
		 WHERE id = $10`,
		p.Name, p.Description, p.Price, p.Quantity, p.Unit, string(p.Category),
		p.ImageURL, p.IsFeatured, time.Now(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireRow(res)
}

func (s *SQLite) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireRow(res)
}

func (s *SQLite) SetFeatured(ctx context.Context, id string, featured bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET featured = $1, updated_at = $2 WHERE id = $3`,
		featured, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *SQLite) GetFarmer(ctx context.Context, id string) (domain.Farmer, error) {
	var f domain.Farmer
	err := s.db.QueryRowContext(ctx,
		`SELECT id, farm_name, lat, lng, description, founded, contact_phone
		 FROM farmers WHERE id = $1`, id,
	).Scan(&f.ID, &f.FarmName, &f.Latitude, &f.Longitude, &f.Description, &f.Founded, &f.ContactPhone)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Farmer{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Farmer{}, fmt.Errorf("failed to scan farmer: %w", err)
	}
	return f, nil
}

func (s *SQLite) ListFarmers(ctx context.Context) ([]domain.Farmer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, farm_name, lat, lng, description, founded, contact_phone
		 FROM farmers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query farmers: %w", err)
	}
	defer rows.Close()

	var farmers []domain.Farmer
	for rows.Next() {
		var f domain.Farmer
		err := rows.Scan(&f.ID, &f.FarmName, &f.Latitude, &f.Longitude,
			&f.Description, &f.Founded, &f.ContactPhone)
		if err != nil {
			return nil, fmt.Errorf("failed to scan farmer: %w", err)
		}
		farmers = append(farmers, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return farmers, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
