package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// ClientClaims represents the claims in a client access token
type ClientClaims struct {
	jwt.RegisteredClaims
	Client string `json:"client"`
}
