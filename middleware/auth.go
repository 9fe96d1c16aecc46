package middleware

import (
	"context"
	"net/http"
	"strings"

	"mechradii/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and sets "userID" on the
// request context. The token's hash must still match the cached hash for the
// user, so logout and re-login invalidate older tokens immediately.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		cachedHash, err := utils.GetTokenHash(context.Background(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if cachedHash == "" || cachedHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please sign in again"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// OptionalJWTAuth sets "userID" when a valid bearer token is presented and
// lets the request through either way. Used where signed-out access is legal
// but the handler behaves differently for account holders.
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.Next()
			return
		}
		cachedHash, err := utils.GetTokenHash(context.Background(), userID)
		if err == nil && cachedHash != "" && cachedHash == utils.HashToken(tokenString) {
			c.Set("userID", userID)
		}
		c.Next()
	}
}

// CurrentUserID reads the authenticated user's id set by JWTAuthMiddleware.
func CurrentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
