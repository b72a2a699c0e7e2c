package indieweb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlugin(t *testing.T) {
	p := New()
	assert.Equal(t, "IndieWeb endpoint", p.Name())

	widgets := p.HomepageWidgets()
	require.Len(t, widgets, 2)
	assert.Equal(t, "webring", widgets[0].ID)
	assert.Equal(t, "webmentions", widgets[1].ID)
	for _, w := range widgets {
		assert.NoError(t, w.Validate())
	}
}
