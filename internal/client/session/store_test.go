package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sorail742/task-manager-frontend/internal/client/api"
	"github.com/sorail742/task-manager-frontend/internal/models"
)

// fakeValidator implements Validator for testing.
type fakeValidator struct {
	identity models.Identity
	err      error
	calls    int
}

func (f *fakeValidator) Me(ctx context.Context) (models.Identity, error) {
	f.calls++
	return f.identity, f.err
}

func newTestStore(t *testing.T) (*Store, *Keystore) {
	t.Helper()
	ks := testKeystore(t)
	return NewStore(ks, zap.NewNop()), ks
}

func TestStore_StartsBootstrapping(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Equal(t, StatusBootstrapping, s.Snapshot().Status)
	assert.Empty(t, s.Credential())
}

func TestBootstrap_NoSavedCredential(t *testing.T) {
	s, _ := newTestStore(t)
	v := &fakeValidator{}

	status := s.Bootstrap(context.Background(), v)

	assert.Equal(t, StatusAnonymous, status)
	assert.Zero(t, v.calls, "no validation call without a saved credential")
}

func TestBootstrap_ValidCredential(t *testing.T) {
	s, ks := newTestStore(t)
	saved := models.Identity{ID: "1", Name: "Alice", Email: "a@b.com", Role: models.RoleMember}
	require.NoError(t, ks.Save("t1", saved))

	// The server now reports a different role; the fresh identity wins.
	fresh := saved
	fresh.Role = models.RoleAdmin
	v := &fakeValidator{identity: fresh}

	status := s.Bootstrap(context.Background(), v)

	assert.Equal(t, StatusAuthenticated, status)
	snap := s.Snapshot()
	assert.Equal(t, "t1", snap.Credential)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, models.RoleAdmin, snap.Identity.Role)

	// Storage was refreshed with the server's identity.
	token, persisted, err := ks.Load()
	require.NoError(t, err)
	assert.Equal(t, "t1", token)
	require.NotNil(t, persisted)
	assert.Equal(t, fresh, *persisted)
}

func TestBootstrap_RejectedCredentialClearsStorage(t *testing.T) {
	s, ks := newTestStore(t)
	require.NoError(t, ks.Save("expired", models.Identity{ID: "1"}))

	v := &fakeValidator{err: &api.Error{Kind: api.KindAuth, StatusCode: 401, Message: "invalid token"}}
	status := s.Bootstrap(context.Background(), v)

	assert.Equal(t, StatusAnonymous, status)
	assert.Empty(t, s.Credential())

	token, identity, err := ks.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, identity)
}

func TestBootstrap_NetworkFailureSettlesAnonymous(t *testing.T) {
	s, ks := newTestStore(t)
	require.NoError(t, ks.Save("t1", models.Identity{ID: "1"}))

	v := &fakeValidator{err: errors.New("connection refused")}
	status := s.Bootstrap(context.Background(), v)

	assert.Equal(t, StatusAnonymous, status)
}

func TestBootstrap_RunsOnce(t *testing.T) {
	s, ks := newTestStore(t)
	require.NoError(t, ks.Save("t1", models.Identity{ID: "1", Role: models.RoleMember}))

	v := &fakeValidator{identity: models.Identity{ID: "1", Role: models.RoleMember}}
	s.Bootstrap(context.Background(), v)
	s.Bootstrap(context.Background(), v)

	assert.Equal(t, 1, v.calls)
}

func TestLoginThenLogout(t *testing.T) {
	s, ks := newTestStore(t)
	id := models.Identity{ID: "1", Name: "Alice", Email: "a@b.com", Role: models.RoleMember}

	s.Login("t1", id)
	snap := s.Snapshot()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	assert.Equal(t, "t1", snap.Credential)
	assert.Equal(t, models.RoleMember, snap.Role())

	token, _, err := ks.Load()
	require.NoError(t, err)
	assert.Equal(t, "t1", token)

	s.Logout()
	snap = s.Snapshot()
	assert.Equal(t, StatusAnonymous, snap.Status)
	assert.Empty(t, snap.Credential)
	assert.Nil(t, snap.Identity)

	token, identity, err := ks.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, identity)
}

func TestSubscribe_ObservesEveryTransition(t *testing.T) {
	s, _ := newTestStore(t)

	var seen []Status
	s.Subscribe(func(snap Snapshot) { seen = append(seen, snap.Status) })

	s.Login("t1", models.Identity{ID: "1", Role: models.RoleMember})
	s.Logout()
	s.Bootstrap(context.Background(), &fakeValidator{})

	assert.Equal(t, []Status{StatusAuthenticated, StatusAnonymous, StatusAnonymous}, seen)
}
