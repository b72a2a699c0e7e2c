// Package metrics exposes prometheus collectors for the homepage endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Save results.
const (
	SaveOK          = "ok"
	SaveInputError  = "input_error"
	SaveStoreError  = "store_error"
	SaveMirrorError = "mirror_error"
)

// Public read results.
const (
	PublicConfig = "config"
	PublicNull   = "null"
	PublicError  = "error"
)

var (
	ConfigSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "homepage",
		Name:      "config_saves_total",
		Help:      "Configuration saves by result.",
	}, []string{"result"})

	PresetsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "homepage",
		Name:      "presets_applied_total",
		Help:      "Layout presets applied by preset id.",
	}, []string{"preset"})

	MirrorAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "homepage",
		Name:      "mirror_write_attempts_total",
		Help:      "Attempts to write the build mirror file, retries included.",
	})

	PublicReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "homepage",
		Name:      "public_config_reads_total",
		Help:      "Public config reads by outcome.",
	}, []string{"outcome"})

	CatalogSections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "homepage",
		Name:      "catalog_sections",
		Help:      "Section descriptors in the current catalog.",
	})

	CatalogWidgets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "homepage",
		Name:      "catalog_widgets",
		Help:      "Widget descriptors in the current catalog.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
