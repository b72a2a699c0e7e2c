package homepage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Editable fields accepted by save.
var inputFields = []string{
	"layout",
	"hero",
	"sections",
	"sidebar",
	"blogListingSidebar",
	"blogPostSidebar",
	"footer",
	"identity",
}

// Input holds the raw value of each submitted field. A field may arrive as
// its structural JSON value or as a JSON string containing JSON text.
type Input map[string]json.RawMessage

// InputError reports a submitted field that could not be decoded.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid value for %s: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// InputFromForm converts a form submission, where every field is text.
func InputFromForm(form url.Values) Input {
	in := make(Input)
	for _, field := range inputFields {
		if _, ok := form[field]; !ok {
			continue
		}
		raw, _ := json.Marshal(form.Get(field))
		in[field] = raw
	}
	return in
}

// InputFromJSON decodes a JSON request body. Unknown fields are ignored.
func InputFromJSON(body []byte) (Input, error) {
	var in Input
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, &InputError{Field: "body", Err: err}
	}
	if in == nil {
		in = make(Input)
	}
	return in, nil
}

// Decode turns submitted fields into a configuration. Absent fields stay
// unset; defaults are applied when the configuration is saved.
func Decode(in Input) (*Configuration, error) {
	cfg := &Configuration{}

	layout, err := decodeLayout(in["layout"])
	if err != nil {
		return nil, err
	}
	cfg.Layout = layout

	targets := map[string]any{
		"hero":               &cfg.Hero,
		"sections":           &cfg.Sections,
		"sidebar":            &cfg.Sidebar,
		"blogListingSidebar": &cfg.BlogListingSidebar,
		"blogPostSidebar":    &cfg.BlogPostSidebar,
		"footer":             &cfg.Footer,
		"identity":           &cfg.Identity,
	}
	for _, field := range inputFields[1:] {
		raw, err := coerce(in[field])
		if err != nil {
			return nil, &InputError{Field: field, Err: err}
		}
		if raw == nil {
			continue
		}
		if err := json.Unmarshal(raw, targets[field]); err != nil {
			return nil, &InputError{Field: field, Err: err}
		}
	}
	return cfg, nil
}

// decodeLayout reads layout as plain text. It is never parsed as JSON.
func decodeLayout(raw json.RawMessage) (string, error) {
	if isAbsent(raw) {
		return "", nil
	}
	var layout string
	if err := json.Unmarshal(raw, &layout); err != nil {
		return "", &InputError{Field: "layout", Err: err}
	}
	return strings.TrimSpace(layout), nil
}

// coerce returns the structural JSON for raw. A JSON string is treated as
// JSON text and unwrapped once. It returns nil when the field is absent.
func coerce(raw json.RawMessage) (json.RawMessage, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] != '"' {
		return trimmed, nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	inner := json.RawMessage(text)
	if !json.Valid(inner) {
		return nil, fmt.Errorf("malformed JSON text %q", truncate(text, 40))
	}
	if isAbsent(inner) {
		return nil, nil
	}
	return inner, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
