// Package extension hosts the independently loaded units ("endpoints") that
// make up the publishing platform, and defines the optional capabilities an
// extension can offer the homepage builder.
package extension

import (
	"github.com/gorilla/mux"

	"github.com/darkden-lab/homepage/internal/catalog"
)

// Extension is the only thing every extension must provide.
type Extension interface {
	Name() string
}

// SectionProvider contributes homepage section descriptors.
type SectionProvider interface {
	HomepageSections() []catalog.Descriptor
}

// WidgetProvider contributes homepage sidebar widget descriptors.
type WidgetProvider interface {
	HomepageWidgets() []catalog.Descriptor
}

// Initializer runs during Register, before the host is sealed.
type Initializer interface {
	Init(h *Host) error
}

// Navigator contributes entries to the admin navigation.
type Navigator interface {
	NavigationItems() []NavItem
}

type NavItem struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Path  string `json:"path"`
}

// Sections returns the sections ext contributes. An extension without the
// capability contributes nothing.
func Sections(ext Extension) []catalog.Descriptor {
	if p, ok := ext.(SectionProvider); ok {
		return p.HomepageSections()
	}
	return nil
}

// Widgets returns the widgets ext contributes, or nil.
func Widgets(ext Extension) []catalog.Descriptor {
	if p, ok := ext.(WidgetProvider); ok {
		return p.HomepageWidgets()
	}
	return nil
}

// Navigation returns the nav items ext contributes, or nil.
func Navigation(ext Extension) []NavItem {
	if n, ok := ext.(Navigator); ok {
		return n.NavigationItems()
	}
	return nil
}

// RouteProvider mounts additional routes on the protected router.
type RouteProvider interface {
	RegisterRoutes(r *mux.Router)
}
