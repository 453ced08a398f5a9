package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// AdminClaimsKey is the context key for the validated admin claims
	AdminClaimsKey = "admin_claims"
	// AdminRole is the role claim value required for admin routes
	AdminRole = "admin"
)

// AdminClaims are the JWT claims carried by an admin session token.
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAdmin creates a middleware that validates the Authorization bearer
// token and rejects requests that do not carry an admin session.
// The envelope is written inline to avoid importing the errors package
// (which itself depends on this package for logging context).
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims := &AdminClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if log := GetLogger(c); log != nil {
				log.Warn("Rejected bearer token", map[string]interface{}{
					"path":  c.Request.URL.Path,
					"error": fmt.Sprint(err),
				})
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		if claims.Role != AdminRole {
			abortUnauthorized(c, "Admin access required")
			return
		}

		c.Set(AdminClaimsKey, claims)
		c.Next()
	}
}

// GetAdminClaims retrieves the validated admin claims from the Gin context.
// Returns nil if the request did not pass admin authentication.
func GetAdminClaims(c *gin.Context) *AdminClaims {
	if v, exists := c.Get(AdminClaimsKey); exists {
		if claims, ok := v.(*AdminClaims); ok {
			return claims
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      message,
		"code":       "UNAUTHORIZED",
		"request_id": GetRequestID(c),
	})
}
