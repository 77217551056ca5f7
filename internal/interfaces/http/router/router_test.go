package router

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

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.GET("/products", func(c *gin.Context) { c.String(http.StatusOK, "products") })
	partner := NewDomainGroup("partner", "/partner")
	partner.GET("/suppliers", func(c *gin.Context) { c.String(http.StatusOK, "suppliers") })

	NewRouter(engine).Register(catalog, partner).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/catalog/products")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "products", w.Body.String())
	assert.Equal(t, "suppliers", serve(engine, http.MethodGet, "/api/v1/partner/suppliers").Body.String())
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/catalog/products").Code)
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }

	g := NewDomainGroup("test", "/test")
	g.GET("/a", ok).POST("/b", ok).PUT("/c/:id", ok).PATCH("/d/:id", ok).DELETE("/e/:id", ok)
	NewRouter(engine).Register(g).Setup()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/test/a"},
		{http.MethodPost, "/api/v1/test/b"},
		{http.MethodPut, "/api/v1/test/c/1"},
		{http.MethodPatch, "/api/v1/test/d/1"},
		{http.MethodDelete, "/api/v1/test/e/1"},
	}
	for _, tt := range tests {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.method, w.Body.String())
	}
}

func TestDomainGroup_MiddlewareAndSubgroups(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("catalog", "/catalog").Use(func(c *gin.Context) {
		c.Header("X-Test-Middleware", "applied")
		c.Next()
	})
	assert.Equal(t, "catalog", g.Name())
	assert.Equal(t, "/catalog", g.Prefix())

	g.Group("products", "/products").GET("", func(c *gin.Context) { c.String(http.StatusOK, "products list") })
	g.Group("categories", "/categories").GET("", func(c *gin.Context) { c.String(http.StatusOK, "categories list") })
	g.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, http.MethodGet, "/api/v1/catalog/products")
	assert.Equal(t, "products list", w.Body.String())
	assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))

	w = serve(engine, http.MethodGet, "/api/v1/catalog/categories")
	assert.Equal(t, "categories list", w.Body.String())
	assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
}

func httptestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serveRequest(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}
