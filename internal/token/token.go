package token

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/PocketCal/PC-Backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued token stays valid. There is no refresh
// mechanism; clients re-login after expiry.
const DefaultTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the signed token payload: the identity plus standard expiry.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func secret() ([]byte, error) {
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		return nil, errors.New("JWT_SECRET is empty")
	}
	return []byte(s), nil
}

// Sign issues an HS256 token carrying {email, role} with the given lifetime.
func Sign(email, role string, ttl time.Duration) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// HMACVerifier checks token signatures against the server secret. It is the
// only place tokens are decoded, so a revocation store can be layered in
// here later without touching call sites.
type HMACVerifier struct{}

func (HMACVerifier) Verify(tokenStr string) (utils.Identity, error) {
	key, err := secret()
	if err != nil {
		return utils.Identity{}, err
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !parsed.Valid {
		return utils.Identity{}, ErrInvalidToken
	}
	return utils.Identity{Email: claims.Email, Role: claims.Role}, nil
}
