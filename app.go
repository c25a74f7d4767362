// Package smartdairy wires the dairy marketplace core together: session,
// catalog, cart, checkout, orders, reviews and notifications, ready for a
// host view layer to subscribe to.
package smartdairy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bhukyapavithra/Smart-Dairy-farm/cart"
	"github.com/bhukyapavithra/Smart-Dairy-farm/catalog"
	"github.com/bhukyapavithra/Smart-Dairy-farm/checkout"
	"github.com/bhukyapavithra/Smart-Dairy-farm/config"
	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
	"github.com/bhukyapavithra/Smart-Dairy-farm/notify"
	"github.com/bhukyapavithra/Smart-Dairy-farm/orders"
	"github.com/bhukyapavithra/Smart-Dairy-farm/reviews"
	"github.com/bhukyapavithra/Smart-Dairy-farm/session"
	"github.com/bhukyapavithra/Smart-Dairy-farm/storage"
)

// App is the assembled application graph. Construct it once at startup and
// Close it on shutdown.
type App struct {
	cfg config.Config
	log *slog.Logger

	KV       storage.KV
	Catalog  catalog.Repository
	Session  *session.Store
	Cart     *cart.Store
	Orders   *orders.Store
	Reviews  *reviews.Store
	Notify   *notify.Center
	Checkout checkout.Processor
}

// New builds the graph from cfg and restores any persisted session.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	seed, err := catalog.LoadSeed()
	if err != nil {
		return nil, err
	}

	kv, err := newKV(cfg.Storage)
	if err != nil {
		return nil, err
	}

	repo, err := newCatalog(ctx, cfg.Catalog, seed)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	app := &App{
		cfg:      cfg,
		log:      slog.Default().With("component", "app"),
		KV:       kv,
		Catalog:  repo,
		Session:  session.NewStore(kv, &session.MockAuthenticator{Delay: cfg.Auth.Latency}),
		Cart:     cart.NewStore(),
		Orders:   orders.NewStore(),
		Reviews:  reviews.NewStore(),
		Notify:   notify.NewCenter(),
		Checkout: &checkout.MockProcessor{Delay: cfg.Checkout.Latency},
	}
	app.Reviews.Seed(seed.Reviews)

	app.Session.Restore(ctx)
	app.log.Info("application ready",
		"storage_driver", cfg.Storage.Driver,
		"catalog_driver", cfg.Catalog.Driver)

	return app, nil
}

// BeginCheckout starts a checkout flow for the currently logged-in customer.
func (a *App) BeginCheckout() (*checkout.Flow, error) {
	state := a.Session.Current()
	if !state.IsAuthenticated() || state.Role != domain.RoleCustomer {
		return nil, fmt.Errorf("checkout requires a customer session")
	}
	pricing := checkout.Pricing{
		DeliveryFee:           a.cfg.Checkout.DeliveryFee,
		FreeDeliveryThreshold: a.cfg.Checkout.FreeDeliveryThreshold,
	}
	return checkout.NewFlowWithPricing(*state.User, a.Cart, a.Orders, a.Checkout, pricing), nil
}

// Close releases the storage handles and stops the background loops.
func (a *App) Close() error {
	var firstErr error
	if err := a.Notify.Close(); err != nil {
		firstErr = err
	}
	if err := a.Catalog.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := a.KV.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func newKV(cfg config.StorageConfig) (storage.KV, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return storage.NewMemory(), nil
	case config.DriverSQLite:
		return storage.NewSQLite(cfg.SQLitePath)
	case config.DriverRedis:
		return storage.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

func newCatalog(ctx context.Context, cfg config.CatalogConfig, seed catalog.Seed) (catalog.Repository, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return catalog.NewMemory(seed), nil
	case config.DriverSQLite:
		repo, err := catalog.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := repo.SeedIfEmpty(ctx, seed); err != nil {
			_ = repo.Close()
			return nil, err
		}
		return repo, nil
	}
	return nil, fmt.Errorf("unknown catalog driver %q", cfg.Driver)
}
