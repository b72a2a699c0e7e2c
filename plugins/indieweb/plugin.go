package indieweb

import (
	"github.com/darkden-lab/homepage/internal/catalog"
)

const Name = "IndieWeb endpoint"

type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string { return Name }

func (p *Plugin) HomepageWidgets() []catalog.Descriptor {
	lo, hi := 1.0, 50.0
	return []catalog.Descriptor{
		{
			ID:          "webring",
			Label:       "Webring",
			Description: "Previous and next links for a webring",
			Icon:        "link",
			DefaultConfig: map[string]any{
				"ringName": "",
				"ringURL":  "",
			},
			ConfigSchema: map[string]catalog.FieldSpec{
				"ringName": {Type: catalog.FieldText, Label: "Ring name"},
				"ringURL":  {Type: catalog.FieldString, Label: "Ring URL"},
			},
		},
		{
			ID:            "webmentions",
			Label:         "Webmentions",
			Description:   "Recent likes, reposts and replies",
			Icon:          "at-sign",
			DefaultConfig: map[string]any{"maxItems": 10},
			ConfigSchema: map[string]catalog.FieldSpec{
				"maxItems": {Type: catalog.FieldNumber, Label: "Max items", Min: &lo, Max: &hi},
			},
		},
	}
}
