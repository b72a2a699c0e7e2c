// Package homepage implements the homepage builder endpoint: the stored
// configuration, its presets, and the editor and public HTTP surfaces.
package homepage

import (
	"fmt"
	"time"

	"github.com/darkden-lab/homepage/internal/jsonvalue"
)

const (
	// DocumentID is the identity of the single configuration document.
	DocumentID = "homepage"
	// CollectionName is the collection the document lives in.
	CollectionName = "homepageConfig"
)

const (
	LayoutSingleColumn  = "single-column"
	LayoutTwoColumn     = "two-column"
	LayoutFullWidthHero = "full-width-hero"
)

// Layout is an entry of the layout picker.
type Layout struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Layouts returns the layouts offered by the editor.
func Layouts() []Layout {
	return []Layout{
		{ID: LayoutSingleColumn, Label: "Single Column"},
		{ID: LayoutTwoColumn, Label: "Two Column with Sidebar"},
		{ID: LayoutFullWidthHero, Label: "Full-width Hero + Grid"},
	}
}

// Hero controls the hero banner. Keys other than enabled and showSocial
// are kept in Extra and written back unchanged.
type Hero struct {
	Enabled    bool
	ShowSocial bool
	Extra      map[string]any
}

func (h Hero) MarshalJSON() ([]byte, error) {
	return marshalObject([]objectField{
		{"enabled", h.Enabled},
		{"showSocial", h.ShowSocial},
	}, h.Extra)
}

func (h *Hero) UnmarshalJSON(data []byte) error {
	fields, err := unmarshalObject(data)
	if err != nil || fields == nil {
		return err
	}
	*h = Hero{}
	if h.Enabled, err = takeBool(fields, "enabled"); err != nil {
		return err
	}
	if h.ShowSocial, err = takeBool(fields, "showSocial"); err != nil {
		return err
	}
	if len(fields) > 0 {
		h.Extra = fields
	}
	return nil
}

func (h *Hero) clone() *Hero {
	if h == nil {
		return nil
	}
	return &Hero{Enabled: h.Enabled, ShowSocial: h.ShowSocial, Extra: jsonvalue.CloneMap(h.Extra)}
}

// Block is one placed section or widget. Config and any other keys are
// passed through as is; only Type is interpreted.
type Block struct {
	Type   string
	Config map[string]any
	Extra  map[string]any
}

func (b Block) MarshalJSON() ([]byte, error) {
	known := []objectField{{"type", b.Type}}
	if b.Config != nil {
		known = append(known, objectField{"config", b.Config})
	}
	return marshalObject(known, b.Extra)
}

func (b *Block) UnmarshalJSON(data []byte) error {
	fields, err := unmarshalObject(data)
	if err != nil || fields == nil {
		return err
	}
	*b = Block{}
	if v, ok := fields["type"]; ok {
		t, ok := v.(string)
		if !ok && v != nil {
			return fmt.Errorf("block type must be a string, got %T", v)
		}
		b.Type = t
		delete(fields, "type")
	}
	if v, ok := fields["config"]; ok {
		c, ok := v.(map[string]any)
		if !ok && v != nil {
			return fmt.Errorf("block config must be an object, got %T", v)
		}
		b.Config = c
		delete(fields, "config")
	}
	if len(fields) > 0 {
		b.Extra = fields
	}
	return nil
}

func (b Block) clone() Block {
	return Block{Type: b.Type, Config: jsonvalue.CloneMap(b.Config), Extra: jsonvalue.CloneMap(b.Extra)}
}

func cloneBlocks(bs []Block) []Block {
	if bs == nil {
		return nil
	}
	out := make([]Block, len(bs))
	for i, b := range bs {
		out[i] = b.clone()
	}
	return out
}

func blockTypes(bs []Block) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Type
	}
	return out
}

// Configuration is the persisted homepage document.
type Configuration struct {
	ID                 string         `json:"_id,omitempty"`
	Layout             string         `json:"layout"`
	Hero               *Hero          `json:"hero"`
	Sections           []Block        `json:"sections"`
	Sidebar            []Block        `json:"sidebar"`
	BlogListingSidebar []Block        `json:"blogListingSidebar"`
	BlogPostSidebar    []Block        `json:"blogPostSidebar"`
	Footer             []Block        `json:"footer"`
	Identity           map[string]any `json:"identity"`
	UpdatedAt          *time.Time     `json:"updatedAt,omitempty"`
}

// Clone returns a deep copy of c.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	out := *c
	out.Hero = c.Hero.clone()
	out.Sections = cloneBlocks(c.Sections)
	out.Sidebar = cloneBlocks(c.Sidebar)
	out.BlogListingSidebar = cloneBlocks(c.BlogListingSidebar)
	out.BlogPostSidebar = cloneBlocks(c.BlogPostSidebar)
	out.Footer = cloneBlocks(c.Footer)
	out.Identity = jsonvalue.CloneMap(c.Identity)
	if c.UpdatedAt != nil {
		ts := *c.UpdatedAt
		out.UpdatedAt = &ts
	}
	return &out
}

// withDefaults fills every absent field with its default. Present values,
// including empty ones, are kept.
func (c *Configuration) withDefaults() *Configuration {
	out := c.Clone()
	if out.Layout == "" {
		out.Layout = LayoutSingleColumn
	}
	if out.Hero == nil {
		out.Hero = &Hero{Enabled: true, ShowSocial: true}
	}
	if out.Sections == nil {
		out.Sections = []Block{}
	}
	if out.Sidebar == nil {
		out.Sidebar = []Block{}
	}
	if out.BlogListingSidebar == nil {
		out.BlogListingSidebar = []Block{}
	}
	if out.BlogPostSidebar == nil {
		out.BlogPostSidebar = []Block{}
	}
	if out.Footer == nil {
		out.Footer = []Block{}
	}
	return out
}

// DefaultConfig is what the editor shows before anything has been saved.
func DefaultConfig() *Configuration {
	return &Configuration{
		Layout: LayoutTwoColumn,
		Hero:   &Hero{Enabled: true, ShowSocial: true},
		Sections: []Block{
			{Type: "recent-posts", Config: map[string]any{
				"maxItems":  10,
				"postTypes": []any{"note", "article"},
			}},
		},
		Sidebar: []Block{
			{Type: "author-card", Config: map[string]any{}},
			{Type: "recent-posts", Config: map[string]any{"maxItems": 5}},
			{Type: "categories", Config: map[string]any{}},
		},
		BlogListingSidebar: []Block{},
		BlogPostSidebar:    []Block{},
		Footer:             []Block{},
	}
}

// PublicConfig is the projection served to the site build.
type PublicConfig struct {
	Layout    string         `json:"layout"`
	Hero      *Hero          `json:"hero"`
	Sections  []Block        `json:"sections"`
	Sidebar   []Block        `json:"sidebar"`
	Footer    []Block        `json:"footer"`
	Identity  map[string]any `json:"identity"`
	UpdatedAt *time.Time     `json:"updatedAt"`
}

// Public projects c for unauthenticated readers. A nil configuration
// projects to nil, which encodes as JSON null.
func Public(c *Configuration) *PublicConfig {
	if c == nil {
		return nil
	}
	return &PublicConfig{
		Layout:    c.Layout,
		Hero:      c.Hero,
		Sections:  c.Sections,
		Sidebar:   c.Sidebar,
		Footer:    c.Footer,
		Identity:  c.Identity,
		UpdatedAt: c.UpdatedAt,
	}
}
