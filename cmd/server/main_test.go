package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkden-lab/homepage/internal/config"
	"github.com/darkden-lab/homepage/internal/extension"
	"github.com/darkden-lab/homepage/internal/homepage"
	"github.com/darkden-lab/homepage/internal/storage"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Load()
	cfg.StoreDriver = config.StoreDriverMemory
	cfg.ContentDir = t.TempDir()
	cfg.ExtensionsDir = t.TempDir()
	cfg.RateLimitRPS = 1000
	cfg.RateLimitBurst = 1000
	return cfg
}

func bootForTest(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	backend, closeBackend, err := openBackend(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(closeBackend)

	host := extension.NewHost(backend)
	endpoint := homepage.NewEndpoint(homepage.Options{
		MountPath:   cfg.MountPath,
		ContentDir:  cfg.ContentDir,
		MirrorTries: 1,
	})
	require.NoError(t, host.Register(endpoint))
	registerPlugins(host)
	registerManifests(host, cfg.ExtensionsDir)
	require.NoError(t, host.Ready(context.Background()))

	return newRouter(cfg, host, endpoint)
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "127.0.0.1:1234"
	h.ServeHTTP(rr, req)
	return rr
}

func TestOpenBackend_Memory(t *testing.T) {
	backend, closeBackend, err := openBackend(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer closeBackend()
	assert.IsType(t, &storage.Memory{}, backend)
}

func TestRouter_AmbientRoutes(t *testing.T) {
	h := bootForTest(t, testConfig(t))

	rr := get(h, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr = get(h, "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "homepage_catalog_sections")
}

func TestRouter_DiscoversBundledAndManifestExtensions(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.ExtensionsDir, "now.yaml"),
		[]byte("name: Now endpoint\nhomepageSections:\n  - id: now\n    label: Now\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.ExtensionsDir, "broken.yaml"),
		[]byte("homepageWidgets: [unterminated"), 0o644))

	h := bootForTest(t, cfg)

	rr := get(h, "/homepage/api/sections")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	for _, id := range []string{"hero", "cv-experience", "cv-interests", "github-activity", `"now"`} {
		assert.Contains(t, body, id)
	}
	assert.Contains(t, body, `"sourcePlugin":"Now endpoint"`)

	rr = get(h, "/homepage/api/widgets")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "webmentions")

	rr = get(h, "/api/extensions")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, strings.Count(rr.Body.String(), `"name"`))
}

func TestRouter_PublicConfigAndPluginRoutes(t *testing.T) {
	h := bootForTest(t, testConfig(t))

	rr := get(h, "/homepage/api/config.json")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", strings.TrimSpace(rr.Body.String()))

	rr = get(h, "/cv/api/data")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"cv":{}}`, rr.Body.String())
}

func TestRouter_ZeroRateLimitDisablesLimiter(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimitRPS = 0
	cfg.RateLimitBurst = 1
	require.NoError(t, cfg.Validate())

	h := bootForTest(t, cfg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(h, "/homepage/api/config.json").Code)
	}
}
