package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"reqwise/pkg/audit"
	"reqwise/pkg/auth"
	"reqwise/pkg/config"
	"reqwise/pkg/model"
	"reqwise/pkg/server"
	"reqwise/pkg/server/store"
)

const (
	minPasswordLength = 8
	minUsernameLength = 3
	maxUsernameLength = 50
)

// RegisterRequest is the body of POST /users/register
type RegisterRequest struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// UserResponse is the public view of an account; it never carries the hash.
type UserResponse struct {
	ID       uint       `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}

// TokenResponse is the body of a successful POST /users/token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func userResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

// RegisterUsersEndpoints registers registration and login. Both are public;
// login is where credentials get exchanged for a bearer token.
func RegisterUsersEndpoints(s *server.Server) {
	router := s.Router

	router.HandleFunc("/users/register", handleRegister(s.Users)).Methods("POST")
	router.HandleFunc("/users/token", handleLogin(s.Users, s.Codec, s.Config)).Methods("POST")
}

func handleRegister(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)

		if len(req.Username) < minUsernameLength || len(req.Username) > maxUsernameLength {
			respondWithError(w, http.StatusBadRequest, "Username must be between 3 and 50 characters")
			return
		}
		if req.Email == "" || !strings.Contains(req.Email, "@") {
			respondWithError(w, http.StatusBadRequest, "Invalid email address")
			return
		}
		if len(req.Password) < minPasswordLength {
			respondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters")
			return
		}
		if req.Role == "" {
			req.Role = model.RoleCustomer
		}
		if !req.Role.Valid() {
			respondWithError(w, http.StatusBadRequest, "Role must be customer or owner")
			return
		}

		// Distinct conflict messages need separate lookups; the unique
		// indexes still backstop races.
		if _, err := users.GetUserByEmail(req.Email); err == nil {
			respondWithError(w, http.StatusConflict, "Email already registered")
			return
		}
		if _, err := users.GetUserByUsername(req.Username); err == nil {
			respondWithError(w, http.StatusConflict, "Username already taken")
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		user := &model.User{
			Username:       req.Username,
			Email:          req.Email,
			HashedPassword: hash,
			Role:           req.Role,
		}

		if err := users.CreateUser(user); err != nil {
			// Race past the lookups above; the insert cannot tell which
			// unique index fired, so the message stays neutral.
			if errors.Is(err, store.ErrConflict) {
				respondWithError(w, http.StatusConflict, "Account already exists")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		audit.Log(audit.RegisterEvent{
			Email:    user.Email,
			Username: user.Username,
			Role:     user.Role.String(),
			ClientIP: clientIP(r),
			Success:  true,
		})

		respondWithJSON(w, http.StatusCreated, userResponse(user))
	}
}

// handleLogin exchanges form credentials for a bearer token. The form's
// username field carries the email. Unknown account and wrong password are
// indistinguishable to the caller.
func handleLogin(users store.UsersStore, codec *auth.Codec, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			loginFailed(w, r, "", "malformed form body")
			return
		}

		email := r.PostFormValue("username")
		password := r.PostFormValue("password")

		user, err := users.GetUserByEmail(email)
		if err != nil || !auth.VerifyPassword(password, user.HashedPassword) {
			loginFailed(w, r, email, "incorrect email or password")
			return
		}

		token, err := codec.Mint(user.Email, cfg.TokenTTL())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		audit.Log(audit.LoginEvent{
			Email:    user.Email,
			ClientIP: clientIP(r),
			Success:  true,
		})

		respondWithJSON(w, http.StatusOK, TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

func loginFailed(w http.ResponseWriter, r *http.Request, email, reason string) {
	audit.Log(audit.LoginEvent{
		Email:        email,
		ClientIP:     clientIP(r),
		Success:      false,
		ErrorMessage: reason,
	})

	w.Header().Set("WWW-Authenticate", "Bearer")
	respondWithError(w, http.StatusUnauthorized, "Incorrect email or password")
}
