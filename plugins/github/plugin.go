package github

import (
	"github.com/darkden-lab/homepage/internal/catalog"
)

const Name = "GitHub endpoint"

type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string { return Name }

func (p *Plugin) HomepageSections() []catalog.Descriptor {
	lo, hi := 1.0, 30.0
	return []catalog.Descriptor{
		{
			ID:          "github-activity",
			Label:       "GitHub Activity",
			Description: "Recent commits, stars and featured repositories",
			Icon:        "github",
			DefaultConfig: map[string]any{
				"showCommits":  true,
				"showFeatured": true,
				"limit":        5,
			},
			ConfigSchema: map[string]catalog.FieldSpec{
				"showCommits":  {Type: catalog.FieldBoolean, Label: "Show recent commits"},
				"showFeatured": {Type: catalog.FieldBoolean, Label: "Show featured repositories"},
				"limit":        {Type: catalog.FieldNumber, Label: "Items to show", Min: &lo, Max: &hi},
			},
		},
	}
}
