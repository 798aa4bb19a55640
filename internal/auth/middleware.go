package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// RequireAuth enforces bearer JWT tokens signed with HS256.
func RequireAuth(signingKey, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}
		tokenStr := strings.TrimSpace(authz[len("bearer "):])
		claims, err := Parse(tokenStr, signingKey, issuer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// AdminOnly rejects requests whose token role is not admin.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if FromContext(c).Role != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// FacultyOnly rejects requests whose token role is not faculty.
func FacultyOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if FromContext(c).Role != RoleFaculty {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Faculty access required"})
			return
		}
		c.Next()
	}
}

// FromContext returns the claims set by RequireAuth, or zero claims.
func FromContext(c *gin.Context) Claims {
	claimsAny, _ := c.Get(claimsKey)
	claims, _ := claimsAny.(Claims)
	return claims
}
