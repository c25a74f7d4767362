// Package session is the single source of truth for who is logged in and as
// what role. The snapshot is mirrored into durable local storage so a
// session survives a restart until an explicit logout.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
	"github.com/bhukyapavithra/Smart-Dairy-farm/pubsub"
	"github.com/bhukyapavithra/Smart-Dairy-farm/storage"
)

// The two durable entries. They are always written and cleared together; a
// snapshot with only one of them present is treated as no session.
const (
	keyUser     = "user"
	keyUserType = "userType"
)

// State is a point-in-time snapshot of the session.
//
// While Loading is true, authentication state is indeterminate and must not
// be read as "unauthenticated": Loading covers the initial restore and
// every in-flight login/register round trip.
type State struct {
	User    *domain.User
	Role    domain.Role
	Loading bool
}

// IsAuthenticated reports whether an identity is present.
func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// Store owns the session state. All mutations are applied atomically under
// one lock; asynchronous operations resolve with last-write-wins semantics,
// so a superseded login's eventual result is silently discarded.
type Store struct {
	kv   storage.KV
	auth Authenticator
	bus  *pubsub.Broadcaster[State]
	log  *slog.Logger

	mu    sync.Mutex
	state State
	gen   uint64 // bumped by every settling mutation; stale ops see a newer gen and drop out
}

// NewStore wires the capability dependencies. The store starts in the
// pre-restore Loading state; call Restore once at startup.
func NewStore(kv storage.KV, auth Authenticator) *Store {
	return &Store{
		kv:   kv,
		auth: auth,
		bus:  pubsub.New[State](),
		log:  slog.Default().With("component", "session"),
		state: State{
			Loading: true,
		},
	}
}

// Subscribe registers fn for every state change and returns an unsubscribe
// func. The current state is not replayed; read Current first.
func (s *Store) Subscribe(fn func(State)) func() {
	return s.bus.Subscribe(fn)
}

// Current returns a snapshot safe to retain.
func (s *Store) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	snap := s.state
	if s.state.User != nil {
		u := *s.state.User
		snap.User = &u
	}
	return snap
}

// Restore loads the persisted identity, if any. Absent entries, a partial
// pair, or a malformed value all resolve to an anonymous session; corruption
// is never surfaced as an error. Loading is false afterwards regardless.
func (s *Store) Restore(ctx context.Context) {
	user, role, ok := s.read(ctx)

	s.mu.Lock()
	s.gen++
	if ok {
		s.state = State{User: &user, Role: role}
	} else {
		s.state = State{}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
}

func (s *Store) read(ctx context.Context) (domain.User, domain.Role, bool) {
	rawUser, err := s.kv.Get(ctx, keyUser)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.log.Warn("failed to read saved session, treating as absent", "error", err)
		}
		return domain.User{}, "", false
	}

	rawRole, err := s.kv.Get(ctx, keyUserType)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.log.Warn("failed to read saved role, treating as absent", "error", err)
		}
		return domain.User{}, "", false
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.log.Warn("saved session is malformed, treating as absent", "error", err)
		return domain.User{}, "", false
	}

	role := domain.Role(rawRole)
	if !role.Valid() {
		s.log.Warn("saved role is unknown, treating as absent", "role", rawRole)
		return domain.User{}, "", false
	}

	return user, role, true
}

// Login authenticates via the injected backend. The session enters Loading
// for the duration; if another login/register/logout lands before this one
// settles, this one's result is discarded.
func (s *Store) Login(ctx context.Context, email, password string) error {
	myGen := s.beginOperation()

	user, role, err := s.auth.Login(ctx, email, password)

	return s.settle(ctx, myGen, user, role, err)
}

// Register validates the draft and creates a fresh identity. A blank name
// or email fails with a validation error before any state change.
func (s *Store) Register(ctx context.Context, draft Credentials, role domain.Role) error {
	if draft.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if draft.Email == "" {
		return domain.NewValidationError("email", "is required")
	}
	if !role.Valid() {
		return domain.NewValidationError("role", "is unknown")
	}

	myGen := s.beginOperation()

	user, err := s.auth.Register(ctx, draft, role)

	return s.settle(ctx, myGen, user, role, err)
}

func (s *Store) beginOperation() uint64 {
	s.mu.Lock()
	s.gen++
	myGen := s.gen
	s.state.Loading = true
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return myGen
}

func (s *Store) settle(ctx context.Context, myGen uint64, user domain.User, role domain.Role, err error) error {
	s.mu.Lock()
	if myGen != s.gen {
		// Superseded by a later operation; its outcome already owns the
		// session. Resolve quietly, matching the reference behavior.
		s.mu.Unlock()
		s.log.Debug("discarding superseded auth result", "email", user.Email)
		return nil
	}

	if err != nil {
		s.state.Loading = false
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.bus.Publish(snap)
		return err
	}

	s.state = State{User: &user, Role: role}
	snap := s.snapshotLocked()
	s.persistLocked(ctx, user, role)
	s.mu.Unlock()

	s.bus.Publish(snap)
	return nil
}

// persistLocked mirrors the snapshot into durable storage. Write failures
// are logged, not propagated: the in-memory session is already committed and
// the worst case is a session that does not survive the next restart.
func (s *Store) persistLocked(ctx context.Context, user domain.User, role domain.Role) {
	raw, err := json.Marshal(user)
	if err != nil {
		s.log.Warn("failed to encode session for storage", "error", err)
		return
	}
	if err := s.kv.Set(ctx, keyUser, string(raw)); err != nil {
		s.log.Warn("failed to persist session", "error", err)
		return
	}
	if err := s.kv.Set(ctx, keyUserType, role.String()); err != nil {
		s.log.Warn("failed to persist role", "error", err)
	}
}

// Logout clears the session synchronously and idempotently. Both storage
// entries are removed together; there is no Loading interval.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.gen++ // supersede any in-flight login/register

	if err := s.kv.Delete(ctx, keyUser); err != nil {
		s.log.Warn("failed to clear persisted session", "error", err)
	}
	if err := s.kv.Delete(ctx, keyUserType); err != nil {
		s.log.Warn("failed to clear persisted role", "error", err)
	}

	changed := s.state.User != nil || s.state.Loading
	s.state = State{}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		s.bus.Publish(snap)
	}
}
