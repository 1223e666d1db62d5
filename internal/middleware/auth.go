package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"atelier-backoffice-api/internal/domain"
	"atelier-backoffice-api/internal/repository"
	"atelier-backoffice-api/internal/response"
)

const (
	// ContextUserID is the gin context key holding the authenticated staff ID
	ContextUserID = "user_id"
	// ContextRole is the gin context key holding the authenticated staff role
	ContextRole = "role"
)

// Auth returns a middleware that validates the bearer token and loads the
// staff profile behind it. The profile lookup doubles as revocation: a
// deleted profile means the token no longer grants access.
func Auth(jwtSecret string, profiles repository.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid token claims")
			c.Abort()
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(sub)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
			c.Abort()
			return
		}

		profile, err := profiles.FindByID(c.Request.Context(), userID)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Account no longer exists")
			c.Abort()
			return
		}

		c.Set(ContextUserID, profile.ID)
		c.Set(ContextRole, profile.Role)

		c.Next()
	}
}

// RequireRoles returns a middleware that rejects requests whose
// authenticated role is not in the allowed set. It must run after Auth.
func RequireRoles(roles ...domain.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		role, ok := value.(domain.StaffRole)
		if !ok {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Insufficient role for this operation")
		c.Abort()
	}
}

// UserID extracts the authenticated staff ID from the gin context
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// Role extracts the authenticated staff role from the gin context
func Role(c *gin.Context) (domain.StaffRole, bool) {
	value, exists := c.Get(ContextRole)
	if !exists {
		return "", false
	}
	role, ok := value.(domain.StaffRole)
	return role, ok
}
