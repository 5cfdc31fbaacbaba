package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims issued for LoanOps users.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
