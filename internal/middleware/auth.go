package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/decorabur/decora-api/internal/config"
	"github.com/decorabur/decora-api/internal/models"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, role, ok := ParseBearerToken(c, cfg)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserEmail, email)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware: 401 without an identity, 403
// without the admin role claim.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication_required"})
			return
		}

		if role, _ := roleVal.(string); role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_role_required"})
			return
		}

		c.Next()
	}
}

// ParseBearerToken validates the Authorization header and returns the token
// identity. Shared with the public quote route, which binds a user when a
// valid token happens to be present but never requires one.
func ParseBearerToken(c *gin.Context, cfg *config.Config) (userID uint, email, role string, ok bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, "", "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, "", "", false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, valid := token.Method.(*jwt.SigningMethodHMAC); !valid {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", "", false
	}

	claims, valid := token.Claims.(jwt.MapClaims)
	if !valid {
		return 0, "", "", false
	}

	sub, subOK := claims["sub"].(float64)
	if !subOK {
		return 0, "", "", false
	}
	email, _ = claims["email"].(string)
	role, _ = claims["role"].(string)

	return uint(sub), email, role, true
}
