// ================== internal/pkg/token/token.go ==================
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the HTTP-only cookie that carries the session token.
const CookieName = "auth_token"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingUser  = errors.New("token does not contain a user id")
)

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Config represents JWT configuration
type Config struct {
	Secret        string
	Expiry        time.Duration
	Issuer        string
	SigningMethod jwt.SigningMethod
}

// DefaultConfig returns default JWT configuration
func DefaultConfig(secret string) *Config {
	return &Config{
		Secret:        secret,
		Expiry:        24 * time.Hour,
		Issuer:        "hotel-api",
		SigningMethod: jwt.SigningMethodHS256,
	}
}

// Issuer signs and verifies session tokens with a server-held secret.
type Issuer struct {
	cfg *Config
	now func() time.Time
}

func NewIssuer(cfg *Config) *Issuer {
	if cfg.SigningMethod == nil {
		cfg.SigningMethod = jwt.SigningMethodHS256
	}
	return &Issuer{cfg: cfg, now: time.Now}
}

// Expiry is the lifetime of issued tokens; the auth cookie uses the same value.
func (i *Issuer) Expiry() time.Duration {
	return i.cfg.Expiry
}

// Issue generates a signed token for userID and returns it with its expiry time.
func (i *Issuer) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, ErrMissingUser
	}

	now := i.now()
	expiresAt := now.Add(i.cfg.Expiry)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    i.cfg.Issuer,
			Subject:   userID,
		},
	}

	signed, err := jwt.NewWithClaims(i.cfg.SigningMethod, claims).SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks the signature and expiry of tokenString and returns its claims.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(i.cfg.Secret), nil
	}, jwt.WithTimeFunc(i.now), jwt.WithIssuer(i.cfg.Issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrMissingUser
	}

	return claims, nil
}
