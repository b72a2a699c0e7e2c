package docs

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func serve(method, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	RegisterRoutes(r)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestOpenAPIDocument(t *testing.T) {
	rr := serve(http.MethodGet, SpecPath)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/yaml", rr.Header().Get("Content-Type"))

	var doc struct {
		Paths map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(rr.Body.Bytes(), &doc))
	for _, p := range []string{
		"/homepage", "/homepage/save", "/homepage/apply-preset",
		"/homepage/api/sections", "/homepage/api/widgets", "/homepage/api/config",
		"/homepage/api/config.json", "/api/extensions",
	} {
		assert.Contains(t, doc.Paths, p)
	}
}

func TestOpenAPIDocument_Head(t *testing.T) {
	rr := serve(http.MethodHead, SpecPath)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestSwaggerPage(t *testing.T) {
	rr := serve(http.MethodGet, UIPath)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<title>Homepage Builder API Docs (1.0.0)</title>")
	assert.Contains(t, rr.Body.String(), "openapi.yaml")
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
}
