package catalog

// BuiltinSections returns the section types that are always available.
// Each call builds fresh values so callers may keep or modify the result.
func BuiltinSections() []Descriptor {
	return []Descriptor{
		{
			ID:          "hero",
			Label:       "Hero Section",
			Description: "Author intro with avatar, name, title, and bio",
			Icon:        "user",
			DefaultConfig: map[string]any{
				"showAvatar":      true,
				"showSocialLinks": true,
			},
			ConfigSchema: map[string]FieldSpec{
				"showAvatar":      {Type: FieldBoolean, Label: "Show avatar"},
				"showSocialLinks": {Type: FieldBoolean, Label: "Show social links"},
			},
		},
		{
			ID:          "recent-posts",
			Label:       "Recent Posts",
			Description: "Latest posts from your blog",
			Icon:        "file-text",
			DefaultConfig: map[string]any{
				"maxItems":  10,
				"postTypes": []any{"note", "article", "photo", "bookmark"},
			},
			ConfigSchema: map[string]FieldSpec{
				"maxItems":  {Type: FieldNumber, Label: "Max items", Min: bound(1), Max: bound(50)},
				"postTypes": {Type: FieldArray, Label: "Post types to include"},
			},
		},
		{
			ID:          "custom-html",
			Label:       "Custom Content",
			Description: "Freeform HTML or Markdown block",
			Icon:        "code",
			DefaultConfig: map[string]any{
				"content": "",
			},
			ConfigSchema: map[string]FieldSpec{
				"content": {Type: FieldTextarea, Label: "Content (HTML/Markdown)"},
			},
		},
	}
}

// BuiltinWidgets returns the sidebar widget types that are always available.
func BuiltinWidgets() []Descriptor {
	return []Descriptor{
		simpleWidget("author-card", "Author Card", "h-card with author info", "user"),
		{
			ID:            "recent-posts",
			Label:         "Recent Posts",
			Description:   "Latest posts sidebar",
			Icon:          "file-text",
			DefaultConfig: map[string]any{"maxItems": 5},
			ConfigSchema: map[string]FieldSpec{
				"maxItems": {Type: FieldNumber, Label: "Max items", Min: bound(1), Max: bound(20)},
			},
		},
		simpleWidget("categories", "Categories", "Tag cloud", "tag"),
		simpleWidget("search", "Search", "Site search box", "search"),
		simpleWidget("social-activity", "Social Activity", "Bluesky and Mastodon feeds", "message-circle"),
		simpleWidget("github-repos", "GitHub Projects", "GitHub repositories and activity", "github"),
		simpleWidget("funkwhale", "Listening", "Funkwhale now playing and stats", "music"),
		simpleWidget("blogroll", "Blogroll", "Blog recommendations", "list"),
		{
			ID:          "custom-html",
			Label:       "Custom Content",
			Description: "Freeform HTML or text block",
			Icon:        "code",
			DefaultConfig: map[string]any{
				"title":   "",
				"content": "",
			},
			ConfigSchema: map[string]FieldSpec{
				"title":   {Type: FieldText, Label: "Title (optional)"},
				"content": {Type: FieldTextarea, Label: "Content (HTML)"},
			},
		},
	}
}

func simpleWidget(id, label, description, icon string) Descriptor {
	return Descriptor{
		ID:            id,
		Label:         label,
		Description:   description,
		Icon:          icon,
		DefaultConfig: map[string]any{},
		ConfigSchema:  map[string]FieldSpec{},
	}
}
