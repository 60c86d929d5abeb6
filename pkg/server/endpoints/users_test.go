package endpoints

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reqwise/pkg/auth"
	"reqwise/pkg/model"
	"reqwise/pkg/server/store"
)

func TestRegister(t *testing.T) {
	t.Run("creates account with defaulted role", func(t *testing.T) {
		env := newTestEnv(t)

		env.users.On("GetUserByEmail", "dave@example.com").Return(nil, store.ErrNotFound)
		env.users.On("GetUserByUsername", "dave").Return(nil, store.ErrNotFound)
		env.users.On("CreateUser", mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
			args.Get(0).(*model.User).ID = 42
		}).Return(nil)

		rec := env.do(t, "POST", "/users/register", "", RegisterRequest{
			Username: "dave",
			Email:    "dave@example.com",
			Password: "password123",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody[UserResponse](t, rec)
		assert.Equal(t, uint(42), body.ID)
		assert.Equal(t, "dave", body.Username)
		assert.Equal(t, model.RoleCustomer, body.Role)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("stores a hash, never the password", func(t *testing.T) {
		env := newTestEnv(t)

		var created *model.User
		env.users.On("GetUserByEmail", "dave@example.com").Return(nil, store.ErrNotFound)
		env.users.On("GetUserByUsername", "dave").Return(nil, store.ErrNotFound)
		env.users.On("CreateUser", mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
			created = args.Get(0).(*model.User)
		}).Return(nil)

		rec := env.do(t, "POST", "/users/register", "", RegisterRequest{
			Username: "dave",
			Email:    "dave@example.com",
			Password: "password123",
			Role:     model.RoleOwner,
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, created)
		assert.NotEqual(t, "password123", created.HashedPassword)
		assert.True(t, auth.VerifyPassword("password123", created.HashedPassword))
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			req     RegisterRequest
			message string
		}{
			{
				name:    "short username",
				req:     RegisterRequest{Username: "ab", Email: "a@b.com", Password: "password123"},
				message: "Username must be between 3 and 50 characters",
			},
			{
				name:    "long username",
				req:     RegisterRequest{Username: strings.Repeat("x", 51), Email: "a@b.com", Password: "password123"},
				message: "Username must be between 3 and 50 characters",
			},
			{
				name:    "missing email",
				req:     RegisterRequest{Username: "dave", Password: "password123"},
				message: "Invalid email address",
			},
			{
				name:    "email without at sign",
				req:     RegisterRequest{Username: "dave", Email: "nope", Password: "password123"},
				message: "Invalid email address",
			},
			{
				name:    "short password",
				req:     RegisterRequest{Username: "dave", Email: "a@b.com", Password: "short"},
				message: "Password must be at least 8 characters",
			},
			{
				name:    "unknown role",
				req:     RegisterRequest{Username: "dave", Email: "a@b.com", Password: "password123", Role: "admin"},
				message: "Role must be customer or owner",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newTestEnv(t)
				rec := env.do(t, "POST", "/users/register", "", tt.req)
				assertError(t, rec, http.StatusBadRequest, tt.message)
			})
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		env := newTestEnv(t)

		env.users.On("GetUserByEmail", "alice@example.com").Return(testOwner(), nil)

		rec := env.do(t, "POST", "/users/register", "", RegisterRequest{
			Username: "alice2",
			Email:    "alice@example.com",
			Password: "password123",
		})

		assertError(t, rec, http.StatusConflict, "Email already registered")
	})

	t.Run("duplicate username", func(t *testing.T) {
		env := newTestEnv(t)

		env.users.On("GetUserByEmail", "fresh@example.com").Return(nil, store.ErrNotFound)
		env.users.On("GetUserByUsername", "alice").Return(testOwner(), nil)

		rec := env.do(t, "POST", "/users/register", "", RegisterRequest{
			Username: "alice",
			Email:    "fresh@example.com",
			Password: "password123",
		})

		assertError(t, rec, http.StatusConflict, "Username already taken")
	})

	t.Run("conflict surfaced by the store", func(t *testing.T) {
		env := newTestEnv(t)

		env.users.On("GetUserByEmail", "dave@example.com").Return(nil, store.ErrNotFound)
		env.users.On("GetUserByUsername", "dave").Return(nil, store.ErrNotFound)
		env.users.On("CreateUser", mock.AnythingOfType("*model.User")).Return(store.ErrConflict)

		rec := env.do(t, "POST", "/users/register", "", RegisterRequest{
			Username: "dave",
			Email:    "dave@example.com",
			Password: "password123",
		})

		assertError(t, rec, http.StatusConflict, "Account already exists")
	})
}

func loginRequest(email, password string) *http.Request {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req := httptest.NewRequest("POST", "/users/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	t.Run("exchanges credentials for a decodable token", func(t *testing.T) {
		env := newTestEnv(t)

		user := testOwner()
		user.HashedPassword = hash
		env.users.On("GetUserByEmail", user.Email).Return(user, nil)

		rec := httptest.NewRecorder()
		env.srv.Router.ServeHTTP(rec, loginRequest(user.Email, "password123"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[TokenResponse](t, rec)
		assert.Equal(t, "bearer", body.TokenType)

		claims, err := env.codec.Decode(body.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.Email, claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		env := newTestEnv(t)

		user := testOwner()
		user.HashedPassword = hash
		env.users.On("GetUserByEmail", user.Email).Return(user, nil)

		rec := httptest.NewRecorder()
		env.srv.Router.ServeHTTP(rec, loginRequest(user.Email, "wrong-password"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("unknown account reads the same as wrong password", func(t *testing.T) {
		env := newTestEnv(t)

		env.users.On("GetUserByEmail", "ghost@example.com").Return(nil, store.ErrNotFound)

		rec := httptest.NewRecorder()
		env.srv.Router.ServeHTTP(rec, loginRequest("ghost@example.com", "password123"))

		assertError(t, rec, http.StatusUnauthorized, "Incorrect email or password")
	})
}

func TestWhoami(t *testing.T) {
	t.Run("returns the caller", func(t *testing.T) {
		env := newTestEnv(t)

		user := testCustomer()
		token := env.tokenFor(t, user)

		rec := env.do(t, "GET", "/whoami", token, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[UserResponse](t, rec)
		assert.Equal(t, user.ID, body.ID)
		assert.Equal(t, user.Email, body.Email)
		assert.Equal(t, model.RoleCustomer, body.Role)
	})

	t.Run("requires a token", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, "GET", "/whoami", "", nil)

		assertError(t, rec, http.StatusUnauthorized, "Not authenticated")
	})
}
