package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const ContextIdentity = "identity"

type TokenParser interface {
	Parse(token string) (string, error)
}

type Resolver interface {
	Resolve(principal string) (auth.Identity, error)
}

// AuthMiddleware verifies the bearer token and resolves its subject against
// the staff directory, so a removed account loses access immediately.
func AuthMiddleware(tokens TokenParser, dir Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "expected a bearer token")
			c.Abort()
			return
		}

		principal, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "token is invalid or expired")
			c.Abort()
			return
		}

		id, err := dir.Resolve(principal)
		if err != nil {
			httperr.Unauthorized(c, "unknown_user", "user no longer exists")
			c.Abort()
			return
		}

		c.Set(ContextIdentity, id)
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
