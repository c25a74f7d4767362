package smartdairy

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhukyapavithra/Smart-Dairy-farm/catalog"
	"github.com/bhukyapavithra/Smart-Dairy-farm/checkout"
	"github.com/bhukyapavithra/Smart-Dairy-farm/config"
	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Auth.Latency = 0
	cfg.Checkout.Latency = 0
	dir := t.TempDir()
	cfg.Storage.SQLitePath = filepath.Join(dir, "session.db")
	cfg.Catalog.SQLitePath = filepath.Join(dir, "catalog.db")
	return cfg
}

func newApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewStartsAnonymousWithSeededCatalog(t *testing.T) {
	app := newApp(t, testConfig(t))

	state := app.Session.Current()
	assert.False(t, state.Loading)
	assert.False(t, state.IsAuthenticated())

	products, err := app.Catalog.ListProducts(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	assert.Len(t, products, 10)

	// Demo reviews are loaded from the same seed.
	_, count := app.Reviews.Average("1")
	assert.Greater(t, count, 0)
}

func TestSQLiteDriversPersistAcrossRestart(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = config.DriverSQLite
	cfg.Catalog.Driver = config.DriverSQLite
	ctx := context.Background()

	app, err := New(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, app.Session.Login(ctx, "jane@example.com", "pw"))
	require.NoError(t, app.Close())

	reopened := newApp(t, cfg)
	state := reopened.Session.Current()
	require.True(t, state.IsAuthenticated())
	assert.Equal(t, domain.RoleCustomer, state.Role)
	assert.Equal(t, "jane@example.com", state.User.Email)
}

func TestBeginCheckoutRequiresCustomerSession(t *testing.T) {
	app := newApp(t, testConfig(t))
	ctx := context.Background()

	_, err := app.BeginCheckout()
	assert.Error(t, err)

	require.NoError(t, app.Session.Login(ctx, "john.farmer@example.com", "pw"))
	_, err = app.BeginCheckout()
	assert.Error(t, err)

	require.NoError(t, app.Session.Login(ctx, "jane@example.com", "pw"))
	flow, err := app.BeginCheckout()
	require.NoError(t, err)
	assert.Equal(t, checkout.StageDelivery, flow.Stage())
}

func TestFullPurchaseRoundTrip(t *testing.T) {
	app := newApp(t, testConfig(t))
	ctx := context.Background()

	require.NoError(t, app.Session.Login(ctx, "jane@example.com", "pw"))

	products, err := app.Catalog.ListProducts(ctx, catalog.Filter{})
	require.NoError(t, err)
	require.NotEmpty(t, products)
	app.Cart.Add(products[0], 2)

	flow, err := app.BeginCheckout()
	require.NoError(t, err)
	require.NoError(t, flow.SubmitDelivery(checkout.DeliveryInfo{
		Name:    "Jane Customer",
		Email:   "jane@example.com",
		Phone:   "555-123-4567",
		Address: "12 Meadow Lane",
		City:    "Greenfield",
		Zip:     "01301",
		Option:  checkout.OptionDelivery,
	}))

	created, err := flow.SubmitPayment(ctx, checkout.PaymentInfo{Method: checkout.MethodCash})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Empty(t, app.Cart.Items())

	history := app.Orders.ListByCustomer(app.Session.Current().User.ID)
	require.Len(t, history, 1)
	assert.Equal(t, created[0].ID, history[0].ID)
}
