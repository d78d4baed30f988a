package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyDemoMode marks requests served in demo mode for templates.
const ContextKeyDemoMode = "demo_mode"

const blockedMessage = "This action is disabled in demo mode"

// Middleware keeps the catalog read-only in demo mode. Safe methods always
// pass; unsafe ones pass only for allowlisted path prefixes.
type Middleware struct {
	enabled bool
	allowed []string
}

func NewMiddleware(enabled bool, allowedPrefixes ...string) *Middleware {
	return &Middleware{enabled: enabled, allowed: allowedPrefixes}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if m.isAllowedPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		respondBlocked(c)
	}
}

func (m *Middleware) isAllowedPath(path string) bool {
	for _, prefix := range m.allowed {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func respondBlocked(c *gin.Context) {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     blockedMessage,
			"demo_mode": true,
		})
		return
	}
	c.String(http.StatusForbidden, blockedMessage)
	c.Abort()
}

// InjectContext exposes the demo flag to handlers and templates.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDemoMode, m.enabled)
		c.Next()
	}
}
