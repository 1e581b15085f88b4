package middleware

import (
	"net/http"
	"strings"

	"patitas/services/user"
	"patitas/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthUserMiddleware validates the bearer token and checks its hash
// against the auth cache so revoked tokens stop working immediately.
func JWTAuthUserMiddleware(tokens user.TokenCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Validate the token signature and expiration.
		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// A token is only live while its hash is still cached.
		cachedHash, err := tokens.TokenHash(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication backend unavailable"})
			return
		}
		if cachedHash == "" || cachedHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked or superseded"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
