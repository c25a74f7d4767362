package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
	"github.com/bhukyapavithra/Smart-Dairy-farm/storage"
)

func newStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	return NewStore(kv, &MockAuthenticator{}), kv
}

func TestStartsLoadingUntilRestore(t *testing.T) {
	s, _ := newStore(t)
	assert.True(t, s.Current().Loading)

	s.Restore(context.Background())
	state := s.Current()
	assert.False(t, state.Loading)
	assert.False(t, state.IsAuthenticated())
}

func TestLoginDerivesRoleFromEmail(t *testing.T) {
	ctx := context.Background()
	s, kv := newStore(t)
	s.Restore(ctx)

	require.NoError(t, s.Login(ctx, "old.macdonald@farmer.example", "pw"))

	state := s.Current()
	require.True(t, state.IsAuthenticated())
	assert.Equal(t, domain.RoleFarmer, state.Role)
	assert.Equal(t, "John Farmer", state.User.Name)
	assert.False(t, state.Loading)

	// Both entries are written together.
	_, err := kv.Get(ctx, "user")
	require.NoError(t, err)
	role, err := kv.Get(ctx, "userType")
	require.NoError(t, err)
	assert.Equal(t, "farmer", role)

	require.NoError(t, s.Login(ctx, "jane@example.com", "pw"))
	state = s.Current()
	assert.Equal(t, domain.RoleCustomer, state.Role)
	assert.Equal(t, "Jane Customer", state.User.Name)
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	first := NewStore(kv, &MockAuthenticator{})
	first.Restore(ctx)
	require.NoError(t, first.Login(ctx, "jane@example.com", "pw"))

	// A reload constructs a fresh store over the same durable storage.
	second := NewStore(kv, &MockAuthenticator{})
	second.Restore(ctx)

	state := second.Current()
	require.True(t, state.IsAuthenticated())
	assert.Equal(t, "jane@example.com", state.User.Email)
	assert.Equal(t, domain.RoleCustomer, state.Role)
}

func TestLogoutThenRestoreIsAnonymous(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	s := NewStore(kv, &MockAuthenticator{})
	s.Restore(ctx)
	require.NoError(t, s.Login(ctx, "jane@example.com", "pw"))

	s.Logout(ctx)

	// Fully cleared, not partially.
	_, err := kv.Get(ctx, "user")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	_, err = kv.Get(ctx, "userType")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	reloaded := NewStore(kv, &MockAuthenticator{})
	reloaded.Restore(ctx)
	assert.False(t, reloaded.Current().IsAuthenticated())
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	s.Restore(ctx)

	notified := 0
	s.Subscribe(func(State) { notified++ })

	s.Logout(ctx)
	s.Logout(ctx)
	assert.False(t, s.Current().IsAuthenticated())
	assert.Equal(t, 0, notified, "logging out while anonymous changes nothing")
}

func TestRestoreRecoversFromCorruption(t *testing.T) {
	ctx := context.Background()

	cases := map[string]map[string]string{
		"malformed json": {"user": "{not json", "userType": "farmer"},
		"unknown role":   {"user": `{"id":"123"}`, "userType": "admin"},
		"missing role":   {"user": `{"id":"123"}`},
		"missing user":   {"userType": "customer"},
	}

	for name, entries := range cases {
		t.Run(name, func(t *testing.T) {
			kv := storage.NewMemory()
			for k, v := range entries {
				require.NoError(t, kv.Set(ctx, k, v))
			}

			s := NewStore(kv, &MockAuthenticator{})
			s.Restore(ctx)

			state := s.Current()
			assert.False(t, state.IsAuthenticated())
			assert.False(t, state.Loading)
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	s, kv := newStore(t)
	s.Restore(ctx)

	err := s.Register(ctx, Credentials{Name: "", Email: "a@b.com"}, domain.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = s.Register(ctx, Credentials{Name: "Ann", Email: ""}, domain.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = s.Register(ctx, Credentials{Name: "Ann", Email: "a@b.com"}, domain.Role("admin"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Session remains whatever it was before the call.
	state := s.Current()
	assert.False(t, state.IsAuthenticated())
	assert.False(t, state.Loading)
	_, err = kv.Get(ctx, "user")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestRegisterCreatesIdentity(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	s.Restore(ctx)

	draft := Credentials{Name: "Ann Example", Email: "ann@example.com", Phone: "555-000-1111"}
	require.NoError(t, s.Register(ctx, draft, domain.RoleFarmer))

	state := s.Current()
	require.True(t, state.IsAuthenticated())
	assert.NotEmpty(t, state.User.ID)
	assert.NotEqual(t, "123", state.User.ID)
	assert.Equal(t, "Ann Example", state.User.Name)
	assert.Equal(t, domain.RoleFarmer, state.Role)
}

func TestLoginPublishesLoadingThenSettled(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	s.Restore(ctx)

	var states []State
	s.Subscribe(func(st State) { states = append(states, st) })

	require.NoError(t, s.Login(ctx, "jane@example.com", "pw"))

	require.Len(t, states, 2)
	assert.True(t, states[0].Loading)
	assert.False(t, states[1].Loading)
	assert.True(t, states[1].IsAuthenticated())
}

// gatedAuth lets tests decide the order in which in-flight calls resolve.
type gatedAuth struct {
	gates map[string]chan struct{}
	mock  MockAuthenticator
}

func (g *gatedAuth) Login(ctx context.Context, email, password string) (domain.User, domain.Role, error) {
	<-g.gates[email]
	return g.mock.Login(ctx, email, password)
}

func (g *gatedAuth) Register(ctx context.Context, draft Credentials, role domain.Role) (domain.User, error) {
	<-g.gates[draft.Email]
	return g.mock.Register(ctx, draft, role)
}

func TestSecondLoginSupersedesFirst(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	auth := &gatedAuth{gates: map[string]chan struct{}{
		"slow@farmer.example": make(chan struct{}),
		"fast@example.com":    make(chan struct{}),
	}}

	s := NewStore(kv, auth)
	s.Restore(ctx)

	firstDone := make(chan error, 1)
	go func() { firstDone <- s.Login(ctx, "slow@farmer.example", "pw") }()
	waitLoading(t, s)

	secondDone := make(chan error, 1)
	go func() { secondDone <- s.Login(ctx, "fast@example.com", "pw") }()

	// The second call settles first and owns the session.
	close(auth.gates["fast@example.com"])
	require.NoError(t, <-secondDone)
	assert.Equal(t, "fast@example.com", s.Current().User.Email)

	// The first call settles later but has been superseded: no error, no
	// state change, storage untouched.
	close(auth.gates["slow@farmer.example"])
	require.NoError(t, <-firstDone)

	state := s.Current()
	assert.Equal(t, "fast@example.com", state.User.Email)
	assert.Equal(t, domain.RoleCustomer, state.Role)

	role, err := kv.Get(ctx, "userType")
	require.NoError(t, err)
	assert.Equal(t, "customer", role)
}

func TestLogoutSupersedesInFlightLogin(t *testing.T) {
	ctx := context.Background()
	auth := &gatedAuth{gates: map[string]chan struct{}{
		"slow@example.com": make(chan struct{}),
	}}
	kv := storage.NewMemory()
	s := NewStore(kv, auth)
	s.Restore(ctx)

	done := make(chan error, 1)
	go func() { done <- s.Login(ctx, "slow@example.com", "pw") }()
	waitLoading(t, s)

	s.Logout(ctx)

	close(auth.gates["slow@example.com"])
	require.NoError(t, <-done)

	assert.False(t, s.Current().IsAuthenticated())
	_, err := kv.Get(ctx, "user")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func waitLoading(t *testing.T, s *Store) {
	t.Helper()
	deadline := time.After(time.Second)
	for !s.Current().Loading {
		select {
		case <-deadline:
			t.Fatal("store never entered loading state")
		case <-time.After(time.Millisecond):
		}
	}
}
