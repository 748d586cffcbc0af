package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmptySecret is returned when the service is started without a signing
// key. Signing with an empty key would silently produce tokens that any
// party could forge, so startup refuses instead.
var ErrEmptySecret = errors.New("auth: signing secret is empty")

// Authenticator issues JWTs bound to a user id. The signing secret is
// injected at construction rather than read from the environment at call
// sites.
type Authenticator struct {
	secret   []byte
	tokenTTL time.Duration
}

// New validates the signing secret and returns an Authenticator.
func New(secret string, tokenTTL time.Duration) (*Authenticator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Authenticator{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}, nil
}

// Secret exposes the signing key for the verification middleware.
func (a *Authenticator) Secret() []byte {
	return a.secret
}

// IssueToken signs an HS256 token carrying the user id.
func (a *Authenticator) IssueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(a.tokenTTL).Unix(),
	})
	return token.SignedString(a.secret)
}

// HashSecret derives a salted one-way digest of a raw password using
// bcrypt at the default cost.
func HashSecret(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckSecret reports whether password matches the stored digest.
func CheckSecret(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
