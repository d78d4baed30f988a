package demo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func demoRouter(m *Middleware) *gin.Engine {
	router := gin.New()
	router.Use(m.InjectContext(), m.Handler())
	handler := func(c *gin.Context) {
		c.String(http.StatusOK, "OK %v", c.GetBool(ContextKeyDemoMode))
	}
	router.GET("/catalog/books", handler)
	router.POST("/catalog/book/create", handler)
	router.POST("/export/run", handler)
	return router
}

func serve(router *gin.Engine, method, path, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMiddlewareDisabledPassesEverything(t *testing.T) {
	router := demoRouter(NewMiddleware(false))

	w := serve(router, http.MethodPost, "/catalog/book/create", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK false", w.Body.String())
}

func TestMiddlewareAllowsReads(t *testing.T) {
	router := demoRouter(NewMiddleware(true))

	w := serve(router, http.MethodGet, "/catalog/books", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK true", w.Body.String())
}

func TestMiddlewareBlocksWrites(t *testing.T) {
	router := demoRouter(NewMiddleware(true))

	w := serve(router, http.MethodPost, "/catalog/book/create", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, blockedMessage, w.Body.String())

	w = serve(router, http.MethodPost, "/catalog/book/create", "application/json")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"This action is disabled in demo mode","demo_mode":true}`, w.Body.String())
}

func TestMiddlewareAllowlist(t *testing.T) {
	router := demoRouter(NewMiddleware(true, "/export/"))

	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/export/run", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(router, http.MethodPost, "/catalog/book/create", "").Code)
}
