// Package registry aggregates the section and widget descriptors that
// registered extensions contribute into one published catalog.
package registry

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/darkden-lab/homepage/internal/catalog"
	"github.com/darkden-lab/homepage/internal/extension"
	"github.com/darkden-lab/homepage/internal/logging"
	"github.com/darkden-lab/homepage/internal/metrics"
)

// Registry publishes the most recent discovery result. Readers always see
// a complete catalog; a discovery pass never becomes visible half built.
type Registry struct {
	current atomic.Pointer[catalog.Catalog]
	log     zerolog.Logger
}

func New() *Registry {
	r := &Registry{log: logging.Component("registry")}
	r.current.Store(&catalog.Catalog{
		Sections: []catalog.Descriptor{},
		Widgets:  []catalog.Descriptor{},
	})
	return r
}

// Discover rebuilds the catalog from the built-ins and every extension
// other than self, in registration order, and publishes it.
func (r *Registry) Discover(self extension.Extension, exts []extension.Extension) *catalog.Catalog {
	cat := &catalog.Catalog{
		Sections: catalog.BuiltinSections(),
		Widgets:  catalog.BuiltinWidgets(),
	}

	for _, ext := range exts {
		if ext == self {
			continue
		}
		source := ext.Name()
		for _, d := range extension.Sections(ext) {
			cat.Sections = append(cat.Sections, r.contributed(d, source, "section"))
		}
		for _, d := range extension.Widgets(ext) {
			cat.Widgets = append(cat.Widgets, r.contributed(d, source, "widget"))
		}
	}

	r.current.Store(cat)
	metrics.CatalogSections.Set(float64(len(cat.Sections)))
	metrics.CatalogWidgets.Set(float64(len(cat.Widgets)))

	r.log.Info().
		Int("sections", len(cat.Sections)).
		Int("widgets", len(cat.Widgets)).
		Msgf("discovered %d sections, %d widgets", len(cat.Sections), len(cat.Widgets))
	return cat
}

func (r *Registry) contributed(d catalog.Descriptor, source, kind string) catalog.Descriptor {
	out := d.Clone()
	out.SourcePlugin = source
	if err := out.Validate(); err != nil {
		r.log.Warn().Err(err).Str("extension", source).Str("kind", kind).Msg("malformed descriptor")
	}
	return out
}

// Catalog returns the published catalog. Callers must not modify it.
func (r *Registry) Catalog() *catalog.Catalog {
	return r.current.Load()
}

func (r *Registry) Sections() []catalog.Descriptor {
	return r.current.Load().Sections
}

func (r *Registry) Widgets() []catalog.Descriptor {
	return r.current.Load().Widgets
}
