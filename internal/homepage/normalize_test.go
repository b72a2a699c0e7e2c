package homepage

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_StructuredAndTextualValues(t *testing.T) {
	in := Input{
		"layout":   json.RawMessage(`"two-column"`),
		"hero":     json.RawMessage(`{"enabled":true,"showSocial":false}`),
		"sections": json.RawMessage(`"[{\"type\":\"hero\",\"config\":{}}]"`),
		"identity": json.RawMessage(`"{\"name\":\"Ada\"}"`),
		"unknown":  json.RawMessage(`42`),
	}

	cfg, err := Decode(in)
	require.NoError(t, err)
	assert.Equal(t, LayoutTwoColumn, cfg.Layout)
	assert.Equal(t, &Hero{Enabled: true, ShowSocial: false}, cfg.Hero)
	assert.Equal(t, []Block{{Type: "hero", Config: map[string]any{}}}, cfg.Sections)
	assert.Equal(t, map[string]any{"name": "Ada"}, cfg.Identity)
	assert.Nil(t, cfg.Sidebar)
}

func TestDecode_LayoutIsNeverParsedAsJSON(t *testing.T) {
	cfg, err := Decode(Input{"layout": json.RawMessage(`"[\"two-column\"]"`)})
	require.NoError(t, err)
	assert.Equal(t, `["two-column"]`, cfg.Layout)

	_, err = Decode(Input{"layout": json.RawMessage(`{"id":"x"}`)})
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "layout", inputErr.Field)
}

func TestDecode_BlankAndNullAreAbsent(t *testing.T) {
	cfg, err := Decode(Input{
		"layout":   json.RawMessage(`""`),
		"sections": json.RawMessage(`"   "`),
		"sidebar":  json.RawMessage(`null`),
		"footer":   json.RawMessage(`"null"`),
		"identity": json.RawMessage(`""`),
	})
	require.NoError(t, err)
	assert.Equal(t, &Configuration{}, cfg)
}

func TestDecode_EmptyListIsKept(t *testing.T) {
	cfg, err := Decode(Input{"footer": json.RawMessage(`"[]"`)})
	require.NoError(t, err)
	assert.Equal(t, []Block{}, cfg.Footer)
}

func TestDecode_Malformed(t *testing.T) {
	tests := map[string]json.RawMessage{
		"sections": json.RawMessage(`"[{\"type\":"`),
		"hero":     json.RawMessage(`"true"`),
		"sidebar":  json.RawMessage(`{"type":"search"}`),
		"identity": json.RawMessage(`"not json"`),
	}
	for field, raw := range tests {
		t.Run(field, func(t *testing.T) {
			_, err := Decode(Input{field: raw})
			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, field, inputErr.Field)
		})
	}
}

func TestInputFromForm(t *testing.T) {
	form := url.Values{
		"layout":   {"two-column"},
		"sections": {`[{"type":"hero","config":{}}]`},
		"presetId": {"blog"},
	}

	in := InputFromForm(form)
	assert.Len(t, in, 2)
	assert.JSONEq(t, `"two-column"`, string(in["layout"]))

	cfg, err := Decode(in)
	require.NoError(t, err)
	assert.Equal(t, []Block{{Type: "hero", Config: map[string]any{}}}, cfg.Sections)
}

func TestInputFromJSON(t *testing.T) {
	in, err := InputFromJSON([]byte(`{"layout":"two-column","sidebar":[{"type":"search","config":{}}]}`))
	require.NoError(t, err)

	cfg, err := Decode(in)
	require.NoError(t, err)
	assert.Equal(t, []Block{{Type: "search", Config: map[string]any{}}}, cfg.Sidebar)

	_, err = InputFromJSON([]byte(`[1,2]`))
	assert.Error(t, err)

	in, err = InputFromJSON([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, in)
}
