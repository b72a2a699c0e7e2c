package extension

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/darkden-lab/homepage/internal/httputil"
)

type Handlers struct {
	host *Host
}

func NewHandlers(host *Host) *Handlers {
	return &Handlers{host: host}
}

func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/extensions", h.handleList).Methods("GET")
}

func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, map[string]interface{}{
		"extensions": h.host.Describe(),
	})
}
