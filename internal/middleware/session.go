package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nawa-notice-api/internal/models"
	"github.com/noah-isme/nawa-notice-api/pkg/config"
	appErrors "github.com/noah-isme/nawa-notice-api/pkg/errors"
	"github.com/noah-isme/nawa-notice-api/pkg/logger"
	"github.com/noah-isme/nawa-notice-api/pkg/response"
)

// Gin context keys populated by the session middleware.
const (
	ContextRoleKey   = "sessionRole"
	ContextClaimsKey = "sessionClaims"
)

type tokenValidator interface {
	Validate(token string) (*models.SessionClaims, error)
}

// ResolveRole picks the caller role from the role cookies present on r.
// Cookie values are not verified here; the first non-empty cookie in the
// order teacher, admin, student wins, and no cookie means public.
func ResolveRole(r *http.Request, cookies config.SessionConfig) models.Role {
	ordered := []struct {
		name string
		role models.Role
	}{
		{cookies.TeacherCookie, models.RoleTeacher},
		{cookies.AdminCookie, models.RoleAdmin},
		{cookies.StudentCookie, models.RoleStudent},
	}
	for _, candidate := range ordered {
		if candidate.name == "" {
			continue
		}
		if c, err := r.Cookie(candidate.name); err == nil && c.Value != "" {
			return candidate.role
		}
	}
	return models.RolePublic
}

// Session resolves the role once per request and stores it on the context.
func Session(cookies config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ResolveRole(c.Request, cookies)
		c.Set(ContextRoleKey, role)
		c.Set(logger.RoleKey, string(role))
		c.Next()
	}
}

// RoleFromContext returns the role stored by Session, or public.
func RoleFromContext(c *gin.Context) models.Role {
	if v, ok := c.Get(ContextRoleKey); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return models.RolePublic
}

// RequireAdmin verifies the admin session cookie and stores its claims.
// Failures answer with the legacy {"message": ...} body.
func RequireAdmin(cookies config.SessionConfig, tokens tokenValidator) gin.HandlerFunc {
	return requireAdmin(cookies, tokens, response.LegacyError)
}

// RequireAdminEnvelope is RequireAdmin for the versioned API.
func RequireAdminEnvelope(cookies config.SessionConfig, tokens tokenValidator) gin.HandlerFunc {
	return requireAdmin(cookies, tokens, response.Error)
}

func requireAdmin(cookies config.SessionConfig, tokens tokenValidator, fail func(*gin.Context, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookies.AdminCookie)
		if err != nil || raw == "" {
			fail(c, appErrors.Clone(appErrors.ErrUnauthorized, "admin session required"))
			return
		}
		claims, err := tokens.Validate(raw)
		if err != nil {
			fail(c, err)
			return
		}
		c.Set(ContextClaimsKey, claims)
		c.Set(ContextRoleKey, models.RoleAdmin)
		c.Set(logger.RoleKey, string(models.RoleAdmin))
		c.Next()
	}
}

// ClaimsFromContext returns the verified admin claims, if any.
func ClaimsFromContext(c *gin.Context) *models.SessionClaims {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*models.SessionClaims)
	return claims
}
