package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsAreValid(t *testing.T) {
	for _, d := range append(BuiltinSections(), BuiltinWidgets()...) {
		assert.NoError(t, d.Validate(), d.ID)
		assert.Empty(t, d.SourcePlugin, "built-in %q must not carry a source", d.ID)
	}
}

func TestBuiltinCounts(t *testing.T) {
	assert.Len(t, BuiltinSections(), 3)
	assert.Len(t, BuiltinWidgets(), 9)
}

func TestBuiltinsAreFreshPerCall(t *testing.T) {
	first := BuiltinSections()
	first[0].Label = "changed"
	first[1].DefaultConfig["maxItems"] = 99

	second := BuiltinSections()
	assert.Equal(t, "Hero Section", second[0].Label)
	assert.Equal(t, 10, second[1].DefaultConfig["maxItems"])
}

func TestValidateRejectsMissingID(t *testing.T) {
	d := Descriptor{Label: "No id"}
	assert.Error(t, d.Validate())
}

func TestValidateRejectsUnknownFieldType(t *testing.T) {
	d := Descriptor{
		ID:           "x",
		ConfigSchema: map[string]FieldSpec{"color": {Type: "colour", Label: "Colour"}},
	}
	assert.Error(t, d.Validate())
}

func TestCloneDoesNotShareState(t *testing.T) {
	src := BuiltinSections()[1]
	dst := src.Clone()

	dst.DefaultConfig["maxItems"] = 3
	*dst.ConfigSchema["maxItems"].Max = 5

	assert.Equal(t, 10, src.DefaultConfig["maxItems"])
	require.NotNil(t, src.ConfigSchema["maxItems"].Max)
	assert.Equal(t, 50.0, *src.ConfigSchema["maxItems"].Max)
}

func TestCloneAllNil(t *testing.T) {
	assert.Nil(t, CloneAll(nil))
}
