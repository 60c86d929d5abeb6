package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is used when the caller does not override the token
// lifetime.
const DefaultTokenTTL = 30 * time.Minute

// ErrInvalidToken is returned for any token that cannot be trusted:
// malformed encoding, signature mismatch, missing subject, or expiry in
// the past. The cases are deliberately not distinguishable to callers.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the decoded payload of an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec mints and decodes access tokens. The secret and clock are fixed at
// construction; tests substitute a deterministic clock via Now.
type Codec struct {
	secret []byte

	// Now is the clock used for both minting and expiry checks. Defaults
	// to time.Now.
	Now func() time.Time
}

// NewCodec creates a token codec with the given signing secret.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret, Now: time.Now}
}

// Mint builds and signs a token for the given subject. A ttl of zero falls
// back to DefaultTokenTTL.
func (c *Codec) Mint(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := c.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies a token's signature and expiry and returns its claims.
// Any failure yields ErrInvalidToken; the claims of an unverified token
// are never returned.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return c.Now() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
