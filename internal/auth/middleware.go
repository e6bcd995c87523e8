package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RoleChecker resolves whether an identity holds a role. Backed by the
// role-grant relation in Postgres.
type RoleChecker interface {
	HasRole(ctx context.Context, subject, role string) (bool, error)
}

// AdminAuth enforces a bearer token that is signed, not revoked, and
// whose identity holds the admin role grant.
func AdminAuth(signingKey, issuer string, sessions *Sessions, roles RoleChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimSpace(authz[len("bearer "):])
		claims, err := Parse(tokenStr, signingKey, issuer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if sessions != nil && sessions.Revoked(c.Request.Context(), tokenStr) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session ended"})
			return
		}
		isAdmin, err := roles.HasRole(c.Request.Context(), claims.Subject, "admin")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "role lookup failed"})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Set("claims", claims)
		c.Set("token", tokenStr)
		c.Next()
	}
}
