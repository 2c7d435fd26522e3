// Package middleware provides optional bearer-token validation against an
// OAuth/JWT authority. When no authority is configured the API group runs
// unauthenticated, matching the demo deployments.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/rms-demo/rms-backend/config"
)

// Verifier validates bearer tokens against a JWKS endpoint.
type Verifier struct {
	jwks     *keyfunc.JWKS
	audience string
}

// NewVerifier fetches the authority's JWKS and keeps it refreshed in the
// background. Returns nil when no JWKS URL is configured.
func NewVerifier(ctx context.Context, cfg config.AuthConfig) (*Verifier, error) {
	if cfg.JWKSURL == "" {
		return nil, nil
	}

	jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
		Ctx:             ctx,
		RefreshInterval: time.Hour,
		RefreshErrorHandler: func(err error) {
			// Keep serving with the cached key set on refresh failures.
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}

	return &Verifier{jwks: jwks, audience: cfg.Audience}, nil
}

// RequireAuth validates the Authorization bearer token and stores its
// claims in the gin context. A nil *Verifier is a pass-through, so routers
// can apply it unconditionally.
func (v *Verifier) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v == nil {
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, v.jwks.Keyfunc)
		if err != nil || !parsed.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		if v.audience != "" && !claims.VerifyAudience(v.audience, true) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid audience"})
			c.Abort()
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set("subject", sub)
		}
		c.Set("claims", claims)

		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
