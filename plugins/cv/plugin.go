package cv

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/darkden-lab/homepage/internal/catalog"
	"github.com/darkden-lab/homepage/internal/extension"
	"github.com/darkden-lab/homepage/internal/httputil"
	"github.com/darkden-lab/homepage/internal/storage"
)

const (
	Name           = "CV endpoint"
	CollectionName = "cvData"
	documentID     = "cv"
	mountPath      = "/cv"
)

func maxItemsField() catalog.FieldSpec {
	lo, hi := 1.0, 50.0
	return catalog.FieldSpec{Type: catalog.FieldNumber, Label: "Max items", Min: &lo, Max: &hi}
}

func section(id, label, description, icon string) catalog.Descriptor {
	return catalog.Descriptor{
		ID:            id,
		Label:         label,
		Description:   description,
		Icon:          icon,
		DataEndpoint:  mountPath + "/api/data",
		DefaultConfig: map[string]any{"maxItems": 10},
		ConfigSchema:  map[string]catalog.FieldSpec{"maxItems": maxItemsField()},
	}
}

// Plugin holds structured CV data and contributes one homepage section per
// CV part.
type Plugin struct {
	coll storage.Collection
}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string { return Name }

func (p *Plugin) HomepageSections() []catalog.Descriptor {
	return []catalog.Descriptor{
		section("cv-experience", "Experience", "Work history timeline", "briefcase"),
		section("cv-skills", "Skills", "Skills grouped by category", "award"),
		section("cv-projects", "Projects", "Featured projects", "folder"),
		section("cv-education", "Education", "Degrees and certifications", "book"),
		section("cv-interests", "Interests", "Personal interests", "heart"),
	}
}

func (p *Plugin) NavigationItems() []extension.NavItem {
	return []extension.NavItem{{Label: "CV", Icon: "briefcase", Path: mountPath}}
}

func (p *Plugin) Init(h *extension.Host) error {
	coll, err := h.AddCollection(CollectionName)
	if err != nil {
		return err
	}
	p.coll = coll
	return nil
}

func (p *Plugin) RegisterRoutes(r *mux.Router) {
	sub := r.PathPrefix(mountPath + "/api").Subrouter()
	sub.HandleFunc("/data", p.handleGet).Methods("GET")
	sub.HandleFunc("/data", p.handlePut).Methods("PUT", "POST")
}

// Data returns the stored CV document, or an empty object.
func (p *Plugin) Data(ctx context.Context) (map[string]any, error) {
	raw, err := p.coll.FindOne(ctx, documentID)
	if errors.Is(err, storage.ErrNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	delete(data, "_id")
	return data, nil
}

func (p *Plugin) handleGet(w http.ResponseWriter, r *http.Request) {
	data, err := p.Data(r.Context())
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.WriteSuccess(w, map[string]interface{}{"cv": data})
}

func (p *Plugin) handlePut(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		httputil.WriteError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}
	delete(data, "_id")
	doc, _ := json.Marshal(data)
	if err := p.coll.ReplaceOne(r.Context(), documentID, doc); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.WriteSuccess(w, map[string]interface{}{"message": "CV saved"})
}
