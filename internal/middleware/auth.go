package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/pantry-recipes/backend/internal/types"
)

// ClientKey is the gin context key holding the authenticated client name, if any.
const ClientKey = "client"

// TokenValidator is an interface for validating signed client tokens
type TokenValidator interface {
	Validate(token string) (*types.ClientClaims, error)
}

// ClientAuthConfig lists the credentials a client may present. Any match is enough.
type ClientAuthConfig struct {
	// Token is the shared secret compared verbatim.
	Token string
	// TokenHash is a bcrypt hash of the shared secret.
	TokenHash string
	// Validator accepts signed client tokens. Optional.
	Validator TokenValidator
}

// Enabled reports whether any credential is configured.
func (cfg ClientAuthConfig) Enabled() bool {
	return cfg.Token != "" || cfg.TokenHash != ""
}

// ClientAuth creates a middleware that requires a bearer credential when one
// is configured and lets every request through otherwise.
func ClientAuth(cfg ClientAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled() {
			c.Next()
			return
		}

		credential, ok := bearerCredential(c.GetHeader("Authorization"))
		if !ok || !cfg.accepts(c, credential) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Invalid token"})
			return
		}
		c.Next()
	}
}

func (cfg ClientAuthConfig) accepts(c *gin.Context, credential string) bool {
	if cfg.Token != "" && subtle.ConstantTimeCompare([]byte(credential), []byte(cfg.Token)) == 1 {
		return true
	}
	if cfg.TokenHash != "" && bcrypt.CompareHashAndPassword([]byte(cfg.TokenHash), []byte(credential)) == nil {
		return true
	}
	if cfg.Validator != nil && strings.Count(credential, ".") == 2 {
		if claims, err := cfg.Validator.Validate(credential); err == nil {
			c.Set(ClientKey, claims.Client)
			return true
		}
	}
	return false
}

// bearerCredential extracts the credential of a "Bearer <credential>" header.
// The scheme is matched case-insensitively.
func bearerCredential(header string) (string, bool) {
	scheme, credential, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	credential = strings.TrimSpace(credential)
	return credential, credential != ""
}
