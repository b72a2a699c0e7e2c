package homepage

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/darkden-lab/homepage/internal/catalog"
	"github.com/darkden-lab/homepage/internal/httputil"
	"github.com/darkden-lab/homepage/internal/logging"
	"github.com/darkden-lab/homepage/internal/metrics"
)

const maxBodyBytes = 1 << 20

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.MarshalIndent(v, "", "  ")
		return string(b), err
	},
}).ParseFS(templateFS, "templates/*.html"))

type Handlers struct {
	app *Application
	log zerolog.Logger
}

func NewHandlers(app *Application) *Handlers {
	return &Handlers{app: app, log: logging.Component("homepage")}
}

// RegisterRoutes mounts the editor routes. r is expected to sit behind the
// host's authentication.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix(h.app.MountPath).Subrouter()
	api.HandleFunc("", h.handleDashboard).Methods("GET")
	api.HandleFunc("/", h.handleDashboard).Methods("GET")
	api.HandleFunc("/save", h.handleSave).Methods("POST")
	api.HandleFunc("/apply-preset", h.handleApplyPreset).Methods("POST")
	api.HandleFunc("/api/sections", h.handleListSections).Methods("GET")
	api.HandleFunc("/api/widgets", h.handleListWidgets).Methods("GET")
	api.HandleFunc("/api/config", h.handleGetConfig).Methods("GET")
}

// RegisterPublicRoutes mounts the unauthenticated read path used by the
// site build.
func (h *Handlers) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc(h.app.MountPath+"/api/config.json", h.handlePublicConfig).Methods("GET")
}

type dashboardView struct {
	Title            string                          `json:"title"`
	Config           *Configuration                  `json:"config"`
	Sections         []catalog.Descriptor            `json:"sections"`
	Widgets          []catalog.Descriptor            `json:"widgets"`
	Presets          []Preset                        `json:"presets"`
	ActivePresetID   string                          `json:"activePresetId,omitempty"`
	SectionsByPlugin map[string][]catalog.Descriptor `json:"sectionsByPlugin"`
	HomepageEndpoint string                          `json:"homepageEndpoint"`
	Layouts          []Layout                        `json:"layouts"`
	Saved            bool                            `json:"saved"`
	Error            string                          `json:"error,omitempty"`
}

func groupBySource(ds []catalog.Descriptor) map[string][]catalog.Descriptor {
	out := make(map[string][]catalog.Descriptor)
	for _, d := range ds {
		source := d.SourcePlugin
		if source == "" {
			source = "Built-in"
		}
		out[source] = append(out[source], d)
	}
	return out
}

func (h *Handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.app.Store.Load(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("dashboard load failed")
		h.fail(w, r, "Failed to load homepage configuration", err)
		return
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	cat := h.app.Registry.Catalog()
	view := dashboardView{
		Title:            "Homepage Builder",
		Config:           cfg,
		Sections:         cat.Sections,
		Widgets:          cat.Widgets,
		Presets:          h.app.Presets,
		ActivePresetID:   DetectActivePreset(cfg, h.app.Presets),
		SectionsByPlugin: groupBySource(cat.Sections),
		HomepageEndpoint: h.app.MountPath,
		Layouts:          Layouts(),
		Saved:            r.URL.Query().Get("saved") == "1",
		Error:            r.URL.Query().Get("error"),
	}

	if httputil.WantsJSON(r) {
		httputil.WriteJSON(w, http.StatusOK, view)
		return
	}
	h.render(w, http.StatusOK, "dashboard.html", view)
}

func (h *Handlers) handleSave(w http.ResponseWriter, r *http.Request) {
	in, err := readInput(r)
	if err == nil {
		_, err = h.app.Store.Save(r.Context(), in)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("save failed")
		var mirrorErr *MirrorError
		if errors.As(err, &mirrorErr) {
			h.log.Warn().Msg("document store and build mirror have diverged")
		}
		h.fail(w, r, "Failed to save configuration", err)
		return
	}

	if httputil.WantsJSON(r) {
		httputil.WriteSuccess(w, map[string]interface{}{"message": "Configuration saved"})
		return
	}
	http.Redirect(w, r, h.app.MountPath+"?saved=1", http.StatusFound)
}

func (h *Handlers) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	presetID, err := readPresetID(r)
	if err == nil {
		_, err = h.app.Store.ApplyPreset(r.Context(), presetID, h.app.Presets)
	}

	switch {
	case errors.Is(err, ErrUnknownPreset):
		if httputil.WantsJSON(r) {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		http.Redirect(w, r, h.app.MountPath+"?error=unknown-preset", http.StatusFound)
	case err != nil:
		h.log.Error().Err(err).Str("preset", presetID).Msg("apply preset failed")
		h.fail(w, r, "Failed to apply preset", err)
	case httputil.WantsJSON(r):
		httputil.WriteSuccess(w, map[string]interface{}{"message": "Preset applied"})
	default:
		http.Redirect(w, r, h.app.MountPath+"?saved=1", http.StatusFound)
	}
}

func (h *Handlers) handleListSections(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, map[string]interface{}{"sections": h.app.Registry.Sections()})
}

func (h *Handlers) handleListWidgets(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, map[string]interface{}{"widgets": h.app.Registry.Widgets()})
}

func (h *Handlers) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.app.Store.Load(r.Context())
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	httputil.WriteSuccess(w, map[string]interface{}{"config": cfg})
}

// handlePublicConfig never fails: the site build falls back to its own
// defaults on null.
func (h *Handlers) handlePublicConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.app.Store.Load(r.Context())
	switch {
	case err != nil:
		h.log.Error().Err(err).Msg("public config fetch failed")
		metrics.PublicReads.WithLabelValues(metrics.PublicError).Inc()
		cfg = nil
	case cfg == nil:
		metrics.PublicReads.WithLabelValues(metrics.PublicNull).Inc()
	default:
		metrics.PublicReads.WithLabelValues(metrics.PublicConfig).Inc()
	}
	httputil.WriteJSON(w, http.StatusOK, Public(cfg))
}

type errorView struct {
	Title   string
	Message string
	Error   string
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	if httputil.WantsJSON(r) {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.render(w, http.StatusInternalServerError, "error.html", errorView{
		Title:   "Error",
		Message: message,
		Error:   err.Error(),
	})
}

func (h *Handlers) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w) //nolint:errcheck
}

func isJSONBody(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

func readInput(r *http.Request) (Input, error) {
	if isJSONBody(r) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
		return InputFromJSON(body)
	}
	if err := r.ParseForm(); err != nil {
		return nil, &InputError{Field: "body", Err: err}
	}
	return InputFromForm(r.PostForm), nil
}

func readPresetID(r *http.Request) (string, error) {
	if isJSONBody(r) {
		var body struct {
			PresetID string `json:"presetId"`
		}
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
			return "", &InputError{Field: "presetId", Err: err}
		}
		return body.PresetID, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", &InputError{Field: "presetId", Err: err}
	}
	return r.PostForm.Get("presetId"), nil
}
