package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// HS256 tokens with the customer id in sub.
type JWTIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func NewJWTIssuer(secret string, accessTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

func (i *JWTIssuer) Issue(customerID int64, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(customerID, 10),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}
