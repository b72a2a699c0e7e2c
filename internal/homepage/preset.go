package homepage

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/darkden-lab/homepage/internal/metrics"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a canned layout an operator can apply in one step. Footer is
// never set by a preset.
type Preset struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Layout      string  `json:"layout"`
	Hero        Hero    `json:"hero"`
	Sections    []Block `json:"sections"`
	Sidebar     []Block `json:"sidebar"`
	Footer      []Block `json:"footer"`
}

func block(typ string, config map[string]any) Block {
	if config == nil {
		config = map[string]any{}
	}
	return Block{Type: typ, Config: config}
}

// BuiltinPresets returns the preset library in priority order. Each call
// builds fresh values.
func BuiltinPresets() []Preset {
	hero := Hero{Enabled: true, ShowSocial: true}
	return []Preset{
		{
			ID:          "blog",
			Label:       "Blog",
			Description: "Recent posts front and center",
			Icon:        "newspaper",
			Layout:      LayoutTwoColumn,
			Hero:        hero,
			Sections: []Block{
				block("hero", nil),
				block("recent-posts", map[string]any{"maxItems": 15}),
			},
			Sidebar: []Block{
				block("search", nil),
				block("author-card", nil),
				block("social-activity", nil),
				block("recent-posts", map[string]any{"maxItems": 5}),
			},
			Footer: []Block{},
		},
		{
			ID:          "cv",
			Label:       "CV / Portfolio",
			Description: "Professional profile with experience and projects",
			Icon:        "briefcase",
			Layout:      LayoutFullWidthHero,
			Hero:        hero,
			Sections: []Block{
				block("hero", nil),
				block("cv-experience", nil),
				block("cv-skills", nil),
				block("cv-projects", nil),
				block("cv-education", nil),
				block("cv-interests", nil),
			},
			Sidebar: []Block{
				block("search", nil),
				block("social-activity", nil),
				block("github-repos", nil),
				block("blogroll", nil),
				block("recent-posts", nil),
				block("funkwhale", nil),
				block("author-card", nil),
			},
			Footer: []Block{},
		},
		{
			ID:          "hybrid",
			Label:       "Hybrid",
			Description: "Blog posts with CV highlights",
			Icon:        "layout",
			Layout:      LayoutTwoColumn,
			Hero:        hero,
			Sections: []Block{
				block("hero", nil),
				block("cv-experience", map[string]any{"maxItems": 3}),
				block("recent-posts", map[string]any{"maxItems": 10}),
				block("cv-projects", map[string]any{"maxItems": 3}),
			},
			Sidebar: []Block{
				block("search", nil),
				block("author-card", nil),
				block("social-activity", nil),
				block("github-repos", nil),
				block("blogroll", nil),
			},
			Footer: []Block{},
		},
	}
}

// FindPreset returns the preset with the given id.
func FindPreset(presets []Preset, id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// DetectActivePreset returns the id of the first preset that cfg matches,
// or "" when cfg is custom. Only the layout and the order of section and
// sidebar types are compared; block configs are ignored.
func DetectActivePreset(cfg *Configuration, presets []Preset) string {
	if cfg == nil {
		return ""
	}
	sections := blockTypes(cfg.Sections)
	sidebar := blockTypes(cfg.Sidebar)
	for _, p := range presets {
		if cfg.Layout != p.Layout {
			continue
		}
		if !slices.Equal(sections, blockTypes(p.Sections)) {
			continue
		}
		if !slices.Equal(sidebar, blockTypes(p.Sidebar)) {
			continue
		}
		return p.ID
	}
	return ""
}

// BuildFromPreset materializes p into a new configuration. Preset blocks
// are copied; the footer is taken from current.
func BuildFromPreset(p Preset, current *Configuration) *Configuration {
	cfg := &Configuration{
		Layout:   p.Layout,
		Hero:     p.Hero.clone(),
		Sections: cloneBlocks(p.Sections),
		Sidebar:  cloneBlocks(p.Sidebar),
	}
	if current != nil {
		cfg.Footer = cloneBlocks(current.Footer)
	}
	return cfg
}

// ApplyPreset replaces the stored configuration with the named preset. An
// unknown id fails with ErrUnknownPreset before anything is read or
// written.
func (s *Store) ApplyPreset(ctx context.Context, presetID string, presets []Preset) (*Configuration, error) {
	p, ok := FindPreset(presets, presetID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, presetID)
	}

	current, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	saved, err := s.SaveConfiguration(ctx, BuildFromPreset(p, current))
	if saved != nil {
		metrics.PresetsApplied.WithLabelValues(p.ID).Inc()
		s.log.Info().Str("preset", p.ID).Msgf("applied preset: %s", p.Label)
	}
	return saved, err
}
