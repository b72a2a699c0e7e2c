// Package docs serves the OpenAPI description of the HTTP API and a
// Swagger UI page that renders it.
package docs

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"
)

const (
	SpecPath = "/api/docs/openapi.yaml"
	UIPath   = "/api/docs"
)

//go:embed openapi.yaml
var openAPI []byte

type info struct {
	Title   string `yaml:"title"`
	Version string `yaml:"version"`
}

// documentInfo reads the info block once. A document without a title
// still gets a usable page.
var documentInfo = sync.OnceValue(func() info {
	var doc struct {
		Info info `yaml:"info"`
	}
	if err := yaml.Unmarshal(openAPI, &doc); err != nil || doc.Info.Title == "" {
		return info{Title: "API"}
	}
	return doc.Info
})

var uiPage = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}} Docs{{with .Version}} ({{.}}){{end}}</title>
  <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: {{.SpecURL}},
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`))

func RegisterRoutes(r *mux.Router) {
	r.HandleFunc(SpecPath, serveSpec).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(UIPath, serveUI).Methods(http.MethodGet)
}

func serveSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, "openapi.yaml", time.Time{}, bytes.NewReader(openAPI))
}

func serveUI(w http.ResponseWriter, r *http.Request) {
	doc := documentInfo()
	var buf bytes.Buffer
	err := uiPage.Execute(&buf, struct {
		Title, Version, SpecURL string
	}{doc.Title, doc.Version, SpecPath})
	if err != nil {
		http.Error(w, "failed to render docs page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes()) //nolint:errcheck
}
