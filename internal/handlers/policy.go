package handlers

import (
	"net/http"
	"strings"

	"bookstore/internal/models"

	"github.com/gin-gonic/gin"
)

// accessLevel is the privilege a rule demands.
type accessLevel int

const (
	accessPublic accessLevel = iota
	accessAuthenticated
	accessAdmin
)

// methodAny matches every HTTP method in a rule.
const methodAny = "*"

// accessRule maps a request shape (method + path prefix) to the privilege
// it requires. Rules are evaluated in declaration order, first match wins.
type accessRule struct {
	method string
	prefix string
	access accessLevel
}

// defaultAccessRules is the authorization policy table. Order matters:
// /api/auth/me needs a principal even though the rest of /api/auth is
// public, so its rule comes first. DELETE on cv-reviews is admin-only;
// anything not matched below requires authentication.
var defaultAccessRules = []accessRule{
	{methodAny, "/api/auth/me", accessAuthenticated},
	{methodAny, "/api/auth", accessPublic},
	{http.MethodGet, "/api/books", accessPublic},
	{http.MethodOptions, "/", accessPublic},
	{methodAny, "/api/books", accessAdmin},
	{http.MethodDelete, "/api/cv-reviews", accessAdmin},
	{methodAny, "/api/cv-reviews", accessPublic},
	{http.MethodGet, "/health", accessPublic},
	{methodAny, "/swagger", accessPublic},
	{http.MethodGet, "/ws", accessPublic},
}

// matchPath reports whether path equals prefix or sits below it. The root
// prefix "/" matches everything.
func matchPath(prefix, path string) bool {
	if prefix == "/" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (r accessRule) matches(method, path string) bool {
	if r.method != methodAny && r.method != method {
		return false
	}
	return matchPath(r.prefix, path)
}

// resolveAccess walks the rules in order and returns the privilege of the
// first match, defaulting to authenticated.
func resolveAccess(rules []accessRule, method, path string) accessLevel {
	for _, r := range rules {
		if r.matches(method, path) {
			return r.access
		}
	}
	return accessAuthenticated
}

// requireAccess enforces the policy table against the principal attached by
// the authentication filter: 401 without a principal, 403 when the
// principal's role is insufficient.
func (h *Handler) requireAccess(rules []accessRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		level := resolveAccess(rules, c.Request.Method, c.Request.URL.Path)
		if level == accessPublic {
			c.Next()
			return
		}

		principal, ok := currentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		if level == accessAdmin && principal.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient role",
			})
			return
		}
		c.Next()
	}
}
