package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"catalog-service/internal/models"
)

// DevelopmentAuthMiddleware stamps a fixed admin identity on every
// request. Used when no JWT secret is configured outside production.
func DevelopmentAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", "00000000-0000-0000-0000-000000000001")
		c.Set("role", "admin")
		c.Next()
	}
}

// AdminAuthMiddleware validates a Bearer JWT signed with secret and
// requires an admin role claim. On success the user id and role are
// placed on the request context.
func AdminAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			abortUnauthorized(c, "Invalid authorization format")
			return
		}
		tokenString := authHeader[7:]

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		role, _ := claims["role"].(string)
		if role != "admin" {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "FORBIDDEN", Message: "Admin role required"},
			})
			c.Abort()
			return
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Set("userId", sub)
		}
		c.Set("role", role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Success: false,
		Error:   models.Error{Code: "UNAUTHORIZED", Message: message},
	})
	c.Abort()
}
