// Package session owns the authenticated-session lifecycle: the
// credential, the identity it belongs to, and the status the rest of
// the client keys off. All session mutation goes through Bootstrap,
// Login and Logout; every transition is pushed to subscribers.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sorail742/task-manager-frontend/internal/models"
)

// Status is the session lifecycle state.
type Status int

const (
	// StatusBootstrapping is the initial state, before the persisted
	// credential has been validated. Consumers must treat it as a
	// suspend state, not as Anonymous.
	StatusBootstrapping Status = iota
	// StatusAnonymous means no usable credential exists.
	StatusAnonymous
	// StatusAuthenticated means both credential and identity are set.
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusBootstrapping:
		return "bootstrapping"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Snapshot is an immutable view of the session handed to subscribers.
type Snapshot struct {
	Status     Status
	Credential string
	Identity   *models.Identity
}

// Role returns the identity's role, or the zero Role when anonymous.
func (s Snapshot) Role() models.Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

// Validator checks a credential against the server and returns the
// identity it belongs to. *api.Client satisfies this with Me.
type Validator interface {
	Me(ctx context.Context) (models.Identity, error)
}

// Store is the single owner of session state. It is safe for
// concurrent use; transitions are atomic from a consumer's viewpoint.
type Store struct {
	mu         sync.Mutex
	keystore   *Keystore
	log        *zap.Logger
	credential string
	identity   *models.Identity
	status     Status
	subs       []func(Snapshot)

	bootstrapOnce sync.Once
}

// NewStore creates a Store in the Bootstrapping state.
func NewStore(keystore *Keystore, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		keystore: keystore,
		log:      log,
		status:   StatusBootstrapping,
	}
}

// Credential returns the current bearer token, empty when anonymous.
// It implements api.TokenSource.
func (s *Store) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential
}

// Snapshot returns the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Status: s.status, Credential: s.credential, Identity: s.identity}
}

// Subscribe registers fn to be called on every state transition.
// Callbacks run synchronously on the transitioning goroutine and must
// not call back into the store.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Bootstrap resolves the initial session status exactly once per
// process. A persisted credential is validated against the server;
// any failure (rejected token or network error) clears the persisted
// slots and settles on Anonymous. Bootstrap never returns an error:
// its completion, whatever the outcome, is what settles the session.
func (s *Store) Bootstrap(ctx context.Context, v Validator) Status {
	s.bootstrapOnce.Do(func() { s.bootstrap(ctx, v) })
	return s.Snapshot().Status
}

func (s *Store) bootstrap(ctx context.Context, v Validator) {
	token, saved, err := s.keystore.Load()
	if err != nil {
		s.log.Warn("failed to load saved session", zap.Error(err))
	}
	if token == "" {
		s.transition(StatusAnonymous, "", nil)
		return
	}

	// Stage the credential so the validation call carries it, while
	// the status stays Bootstrapping until the outcome is known.
	s.mu.Lock()
	s.credential = token
	s.mu.Unlock()

	identity, err := v.Me(ctx)
	if err != nil {
		s.log.Info("saved credential rejected, clearing session", zap.Error(err))
		if cerr := s.keystore.Clear(); cerr != nil {
			s.log.Warn("failed to clear keystore", zap.Error(cerr))
		}
		s.transition(StatusAnonymous, "", nil)
		return
	}

	// Re-persist with the server's current identity: the role may have
	// changed since the session was saved.
	if saved == nil || *saved != identity {
		if serr := s.keystore.Save(token, identity); serr != nil {
			s.log.Warn("failed to refresh keystore", zap.Error(serr))
		}
	}
	s.transition(StatusAuthenticated, token, &identity)
}

// Login installs a freshly issued credential and identity. The caller
// has already obtained both from the API; no network call is made.
func (s *Store) Login(credential string, identity models.Identity) {
	if err := s.keystore.Save(credential, identity); err != nil {
		// The in-memory session is still valid for this run.
		s.log.Warn("failed to persist session", zap.Error(err))
	}
	s.transition(StatusAuthenticated, credential, &identity)
}

// Logout clears the in-memory and persisted session. It never fails.
func (s *Store) Logout() {
	if err := s.keystore.Clear(); err != nil {
		s.log.Warn("failed to clear keystore", zap.Error(err))
	}
	s.transition(StatusAnonymous, "", nil)
}

func (s *Store) transition(status Status, credential string, identity *models.Identity) {
	s.mu.Lock()
	s.status = status
	s.credential = credential
	s.identity = identity
	snap := Snapshot{Status: status, Credential: credential, Identity: identity}
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	s.log.Debug("session transition", zap.Stringer("status", status))
	for _, fn := range subs {
		fn(snap)
	}
}
