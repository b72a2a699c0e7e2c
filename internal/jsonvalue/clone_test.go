package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneMap_DoesNotAlias(t *testing.T) {
	src := map[string]any{
		"maxItems":  10,
		"postTypes": []any{"note", "article"},
		"nested":    map[string]any{"on": true},
	}

	dst := CloneMap(src)
	assert.Equal(t, src, dst)

	dst["postTypes"].([]any)[0] = "photo"
	dst["nested"].(map[string]any)["on"] = false

	assert.Equal(t, "note", src["postTypes"].([]any)[0])
	assert.Equal(t, true, src["nested"].(map[string]any)["on"])
}

func TestCloneMap_Nil(t *testing.T) {
	assert.Nil(t, CloneMap(nil))
}

func TestClone_StringSlice(t *testing.T) {
	src := []string{"a", "b"}
	dst := Clone(src).([]string)
	dst[0] = "z"
	assert.Equal(t, "a", src[0])
}
