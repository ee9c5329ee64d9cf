package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"webfree/models"
)

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Secret returns the JWT signing secret. The fallback only matters for
// local development; nothing here is a real security boundary, the whole
// app runs on one machine.
func Secret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "webfree-dev-secret"
	}
	return []byte(secret)
}

// JWTAuth validates the Bearer token and stores the caller's user id in the
// gin context under "userId".
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Format should be: Bearer <token>"})
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return Secret(), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Next()
	}
}

// SessionGuard rejects tokens that do not belong to this node's active
// session. One node serves one session; a token minted for another user
// (or an already ended session) must not drive this node's store.
func SessionGuard(sessions interface{ CurrentUser() *models.User }) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		current := sessions.CurrentUser()
		if current == nil || current.ID != c.GetString("userId") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token does not match this node's session"})
			c.Abort()
			return
		}
		c.Next()
	}
}
