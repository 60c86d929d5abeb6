package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqwise/pkg/auth"
	"reqwise/pkg/identity"
	"reqwise/pkg/model"
	"reqwise/pkg/server/store"
)

type stubUsersStore struct {
	users map[string]*model.User
}

func (s *stubUsersStore) GetUserByEmail(email string) (*model.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return user, nil
}

func (s *stubUsersStore) GetUserByUsername(username string) (*model.User, error) {
	return nil, store.ErrNotFound
}

func (s *stubUsersStore) CreateUser(user *model.User) error {
	return nil
}

func newTestAuthenticator(t *testing.T) (*BearerAuthenticator, *auth.Codec) {
	t.Helper()
	codec := auth.NewCodec([]byte("test-secret"))
	users := &stubUsersStore{users: map[string]*model.User{
		"alice@example.com": {ID: 1, Username: "alice", Email: "alice@example.com", Role: model.RoleOwner},
	}}
	return NewBearerAuthenticator(identity.NewResolver(codec, users)), codec
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{
			name:      "well-formed",
			header:    "Bearer abc.def.ghi",
			wantToken: "abc.def.ghi",
			wantOK:    true,
		},
		{
			name:      "lowercase scheme",
			header:    "bearer abc.def.ghi",
			wantToken: "abc.def.ghi",
			wantOK:    true,
		},
		{
			name:   "empty header",
			header: "",
			wantOK: false,
		},
		{
			name:   "wrong scheme",
			header: "Basic abc",
			wantOK: false,
		},
		{
			name:   "scheme only",
			header: "Bearer",
			wantOK: false,
		},
		{
			name:   "extra parts",
			header: "Bearer one two",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := bearerToken(tt.header)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}

func TestMiddlewareResolvesUser(t *testing.T) {
	authn, codec := newTestAuthenticator(t)

	token, err := codec.Mint("alice@example.com", time.Minute)
	require.NoError(t, err)

	var seen *model.User
	handler := authn.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := identity.Get(r.Context())
		require.True(t, ok)
		seen = user
	}))

	req := httptest.NewRequest("GET", "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "alice@example.com", seen.Email)
}

func TestMiddlewareRejections(t *testing.T) {
	authn, codec := newTestAuthenticator(t)

	expired := auth.NewCodec([]byte("test-secret"))
	expired.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Mint("alice@example.com", time.Minute)
	require.NoError(t, err)

	unknownToken, err := codec.Mint("ghost@example.com", time.Minute)
	require.NoError(t, err)

	forged, err := auth.NewCodec([]byte("other-secret")).Mint("alice@example.com", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "malformed header", header: "Bearer"},
		{name: "garbage token", header: "Bearer not-a-token"},
		{name: "expired token", header: "Bearer " + expiredToken},
		{name: "wrong signing key", header: "Bearer " + forged},
		{name: "account no longer exists", header: "Bearer " + unknownToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := authn.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be called")
			}))

			req := httptest.NewRequest("GET", "/projects", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			assert.JSONEq(t, `{"error":"Not authenticated"}`, rec.Body.String())
		})
	}
}
