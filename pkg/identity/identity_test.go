package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqwise/pkg/auth"
	"reqwise/pkg/model"
	"reqwise/pkg/server/store"
)

type stubUsersStore struct {
	users map[string]*model.User
}

func (s *stubUsersStore) GetUserByEmail(email string) (*model.User, error) {
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (s *stubUsersStore) GetUserByUsername(username string) (*model.User, error) {
	return nil, store.ErrNotFound
}

func (s *stubUsersStore) CreateUser(user *model.User) error {
	s.users[user.Email] = user
	return nil
}

func newTestResolver(t *testing.T) (*Resolver, *auth.Codec, *stubUsersStore) {
	t.Helper()
	codec := auth.NewCodec([]byte("resolver-test-secret"))
	users := &stubUsersStore{users: map[string]*model.User{
		"alice@example.com": {ID: 1, Username: "alice", Email: "alice@example.com", Role: model.RoleOwner},
	}}
	return NewResolver(codec, users), codec, users
}

func TestResolveValidToken(t *testing.T) {
	resolver, codec, _ := newTestResolver(t)

	token, err := codec.Mint("alice@example.com", time.Hour)
	require.NoError(t, err)

	user, err := resolver.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, model.RoleOwner, user.Role)
}

func TestResolveInvalidToken(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	_, err := resolver.Resolve("garbage")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveExpiredToken(t *testing.T) {
	resolver, codec, _ := newTestResolver(t)

	minted := time.Now().Add(-2 * time.Hour)
	codec.Now = func() time.Time { return minted }
	token, err := codec.Mint("alice@example.com", time.Hour)
	require.NoError(t, err)
	codec.Now = time.Now

	_, err = resolver.Resolve(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveDeletedAccount(t *testing.T) {
	resolver, codec, users := newTestResolver(t)

	token, err := codec.Mint("alice@example.com", time.Hour)
	require.NoError(t, err)

	// Account vanishes after the token was issued
	delete(users.users, "alice@example.com")

	_, err = resolver.Resolve(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestActiveUserPassThrough(t *testing.T) {
	u := &model.User{ID: 7}
	got, err := ActiveUser(u)
	require.NoError(t, err)
	assert.Same(t, u, got)
}

func TestContextRoundTrip(t *testing.T) {
	u := &model.User{ID: 42, Username: "carol"}

	ctx := Set(context.Background(), u)
	got, ok := Get(ctx)
	require.True(t, ok)
	assert.Same(t, u, got)

	_, ok = Get(context.Background())
	assert.False(t, ok)
}
