package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/pkg/jwt"
	"github.com/tagshop/core/internal/pkg/response"
)

const contextKeyPrincipal = "principal"

// Principal is the authenticated identity attached to the request context.
// It comes entirely from the signed token; no session store is consulted.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   models.PlatformRole
}

// Auth enforces a valid bearer token.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := principalFromRequest(c)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(contextKeyPrincipal, principal)
		c.Next()
	}
}

// OptionalAuth attaches the principal if a valid token is present, but does
// not block the request.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, err := principalFromRequest(c); err == nil {
			c.Set(contextKeyPrincipal, principal)
		}
		c.Next()
	}
}

// RequirePlatformAdmin gates the admin API prefix on the platform-wide role.
// It must run after Auth.
func RequirePlatformAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			response.Unauthorized(c)
			return
		}
		if !p.Role.IsAdmin() {
			response.Forbidden(c, "")
			return
		}
		c.Next()
	}
}

// CurrentPrincipal extracts the authenticated principal from context.
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	v, exists := c.Get(contextKeyPrincipal)
	if !exists {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}

// CurrentUserID returns the authenticated user id, or "" for anonymous requests.
func CurrentUserID(c *gin.Context) string {
	if p, ok := CurrentPrincipal(c); ok {
		return p.UserID
	}
	return ""
}

// IsAuthenticated reports whether the request carries a valid token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func principalFromRequest(c *gin.Context) (*Principal, error) {
	claims, err := jwt.Parse(extractToken(c))
	if err != nil {
		return nil, err
	}
	return &Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   models.PlatformRole(claims.Role),
	}, nil
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	if raw, err := c.Cookie("tagshop_token"); err == nil {
		return NormalizeToken(raw)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
