package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried in every EatMove token: the account id within its role's
// table plus the role itself (member / restaurant / courier).
type Claims struct {
	AccountID uint   `json:"accountId"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(accountID uint, role string, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
