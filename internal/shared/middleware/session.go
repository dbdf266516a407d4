package middleware

import (
	"foundation-backend/internal/auth"
	"foundation-backend/internal/config"
	"foundation-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextKeyPrincipal = "principal"
	ContextKeyRawToken  = "raw_token"
)

// Session resolves the request identity from the two http-only cookies.
// The staff cookie wins when both are present. Resolution failure on a
// present cookie does not abort; the request simply proceeds anonymous and
// RequireAuth decides later. This keeps public endpoints usable with a stale
// cookie still in the jar.
func Session(resolver *auth.Resolver, cookies config.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if token, err := c.Cookie(cookies.StaffName); err == nil && token != "" {
			if p, err := resolver.ResolveStaffSession(ctx, token); err == nil {
				c.Set(ContextKeyPrincipal, p)
				c.Set(ContextKeyRawToken, token)
				c.Next()
				return
			}
		}

		if token, err := c.Cookie(cookies.MemberName); err == nil && token != "" {
			if p, err := resolver.ResolveMemberSession(ctx, token); err == nil {
				c.Set(ContextKeyPrincipal, p)
				c.Set(ContextKeyRawToken, token)
			}
		}

		c.Next()
	}
}

// Principal returns the resolved identity, if any.
func Principal(c *gin.Context) (*auth.Principal, bool) {
	v, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return nil, false
	}

	p, ok := v.(*auth.Principal)
	return p, ok
}

// RawToken returns the cookie value the current principal was resolved from.
func RawToken(c *gin.Context) string {
	v, exists := c.Get(ContextKeyRawToken)
	if !exists {
		return ""
	}

	token, _ := v.(string)
	return token
}

// RequireAuth aborts with 401 when no identity was resolved.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Principal(c); !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 401 for anonymous requests and 403 for
// authenticated non-admins. The two must never be conflated.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := Principal(c)
		if !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		if !auth.CanAdminister(p) {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
