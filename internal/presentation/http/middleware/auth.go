package middleware

import (
	"strings"

	"github.com/dealerdesk/dealerdesk-api/internal/presentation/http/dto/response"
	"github.com/dealerdesk/dealerdesk-api/pkg/apperror"
	"github.com/dealerdesk/dealerdesk-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// TokenSource extracts the raw token from a request. The legacy surface is
// inconsistent on purpose: CRUD reads the auth-token header, download reads
// the auth-token cookie. Both feed the same verifier.
type TokenSource func(c *gin.Context) string

// FromHeader reads the token from a request header.
func FromHeader(name string) TokenSource {
	return func(c *gin.Context) string {
		return c.GetHeader(name)
	}
}

// FromCookie reads the token from a cookie.
func FromCookie(name string) TokenSource {
	return func(c *gin.Context) string {
		token, err := c.Cookie(name)
		if err != nil {
			return ""
		}
		return token
	}
}

// LegacyTokenAuth verifies the legacy auth token before any handler work.
// Failure answers HTTP 200 with the not-authenticated envelope and stops the
// chain, so no store call ever happens for an unauthenticated request.
func LegacyTokenAuth(jwtManager *utils.JWTManager, source TokenSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwtManager.ValidateAccessToken(source(c))
		if err != nil {
			response.LegacyFail(c, apperror.OpNotAuthenticated, "user not authenticated")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// BearerAuth creates the JWT authentication middleware for the v1 API.
func BearerAuth(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}
