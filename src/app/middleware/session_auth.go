package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jokeboard/src/app/http/response"
	"jokeboard/src/core/ports"
)

// UserIDKey is the context key under which the session middleware stores the
// authenticated user's ID.
const UserIDKey = "user_id"

// SessionAuth resolves the session cookie into a user ID and stores it in the
// gin context. Requests without a valid session pass through unauthenticated;
// use RequireUser for endpoints that must have one.
func SessionAuth(tokens ports.SessionTokens, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			// Expired or tampered cookie; treat as anonymous.
			c.Next()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// RequireUser aborts with 401 unless SessionAuth resolved a user. It runs
// before the request body is read, so an unauthenticated submission is
// rejected without parsing any form field.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			response.Unauthorized(c, "you must be logged in", GetRequestID(c))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the authenticated user's ID from the gin context.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
