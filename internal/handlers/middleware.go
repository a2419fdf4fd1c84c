package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookmarkd/internal/auth"
)

const (
	userIDContextKey    = "userID"
	requestIDContextKey = "requestID"
	requestIDHeader     = "X-Request-ID"
)

// RequestID attaches a correlation id to every request, honoring one already
// supplied by the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDContextKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// AuthRequired validates the bearer token and stores the authenticated user
// id on the context. A structurally valid token whose subject is not an
// integer user id is rejected with 422, distinct from the 401 for a missing
// or invalid credential.
func AuthRequired(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}
		userID, err := jwtManager.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, auth.ErrInvalidSubject) {
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid token subject"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

// currentUserID returns the user id stored by AuthRequired. It is only valid
// on routes behind that middleware.
func currentUserID(c *gin.Context) uint {
	value, _ := c.Get(userIDContextKey)
	userID, _ := value.(uint)
	return userID
}
