package extension

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkden-lab/homepage/internal/catalog"
	"github.com/darkden-lab/homepage/internal/storage"
)

type named string

func (n named) Name() string { return string(n) }

type initExt struct {
	name  string
	init  func(h *Host) error
	calls int
}

func (e *initExt) Name() string { return e.name }

func (e *initExt) Init(h *Host) error {
	e.calls++
	if e.init != nil {
		return e.init(h)
	}
	return nil
}

func TestRegister_KeepsOrder(t *testing.T) {
	h := NewHost(storage.NewMemory())
	require.NoError(t, h.Register(named("a")))
	require.NoError(t, h.Register(named("b")))
	require.NoError(t, h.Register(named("c")))

	var names []string
	for _, e := range h.Endpoints() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestRegister_RejectsDuplicateAndUnnamed(t *testing.T) {
	h := NewHost(storage.NewMemory())
	require.NoError(t, h.Register(named("a")))

	assert.ErrorIs(t, h.Register(named("a")), ErrDuplicateExtension)
	assert.ErrorIs(t, h.Register(named("")), ErrUnnamedExtension)
	assert.Len(t, h.Endpoints(), 1)
}

func TestRegister_RunsInit(t *testing.T) {
	h := NewHost(storage.NewMemory())
	ext := &initExt{name: "x"}

	require.NoError(t, h.Register(ext))
	assert.Equal(t, 1, ext.calls)
}

func TestRegister_FailedInitIsRolledBack(t *testing.T) {
	h := NewHost(storage.NewMemory())
	boom := errors.New("boom")

	err := h.Register(&initExt{name: "x", init: func(*Host) error { return boom }})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, h.Endpoints())

	require.NoError(t, h.Register(named("x")))
}

func TestReady_RunsHooksAfterAllRegistrations(t *testing.T) {
	h := NewHost(storage.NewMemory())
	var seen []int

	require.NoError(t, h.Register(&initExt{name: "first", init: func(h *Host) error {
		return h.OnReady(func(context.Context) error {
			seen = append(seen, len(h.Endpoints()))
			return nil
		})
	}}))
	require.NoError(t, h.Register(named("second")))
	require.NoError(t, h.Register(named("third")))

	assert.Empty(t, seen)
	require.NoError(t, h.Ready(context.Background()))
	assert.Equal(t, []int{3}, seen)
	assert.True(t, h.Sealed())
}

func TestReady_SealsHost(t *testing.T) {
	h := NewHost(storage.NewMemory())
	require.NoError(t, h.Ready(context.Background()))

	assert.ErrorIs(t, h.Register(named("late")), ErrSealed)
	assert.ErrorIs(t, h.OnReady(func(context.Context) error { return nil }), ErrSealed)
	assert.ErrorIs(t, h.Ready(context.Background()), ErrSealed)
}

func TestReady_JoinsHookErrors(t *testing.T) {
	h := NewHost(storage.NewMemory())
	e1, e2 := errors.New("one"), errors.New("two")
	ran := 0
	require.NoError(t, h.OnReady(func(context.Context) error { ran++; return e1 }))
	require.NoError(t, h.OnReady(func(context.Context) error { ran++; return e2 }))

	err := h.Ready(context.Background())
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
	assert.Equal(t, 2, ran)
}

func TestAddCollection(t *testing.T) {
	h := NewHost(storage.NewMemory())
	ctx := context.Background()

	c1, err := h.AddCollection("homepageConfig")
	require.NoError(t, err)
	require.NoError(t, c1.ReplaceOne(ctx, "homepage", []byte(`{"layout":"two-column"}`)))

	c2, err := h.AddCollection("homepageConfig")
	require.NoError(t, err)
	got, err := c2.FindOne(ctx, "homepage")
	require.NoError(t, err)
	assert.JSONEq(t, `{"layout":"two-column"}`, string(got))

	_, err = NewHost(nil).AddCollection("x")
	assert.Error(t, err)
}

type contributor struct{}

func (contributor) Name() string { return "contrib" }

func (contributor) HomepageSections() []catalog.Descriptor {
	return []catalog.Descriptor{{ID: "one"}, {ID: "two"}}
}

func (contributor) NavigationItems() []NavItem {
	return []NavItem{{Label: "Contrib", Icon: "star", Path: "/contrib"}}
}

func TestDescribe(t *testing.T) {
	h := NewHost(storage.NewMemory())
	require.NoError(t, h.Register(contributor{}))
	require.NoError(t, h.Register(named("plain")))

	infos := h.Describe()
	require.Len(t, infos, 2)
	assert.Equal(t, Info{Name: "contrib", Sections: 2, Navigation: []NavItem{{Label: "Contrib", Icon: "star", Path: "/contrib"}}}, infos[0])
	assert.Equal(t, Info{Name: "plain", Navigation: []NavItem{}}, infos[1])
}

func TestHandleList(t *testing.T) {
	h := NewHost(storage.NewMemory())
	require.NoError(t, h.Register(contributor{}))

	r := mux.NewRouter()
	NewHandlers(h).RegisterRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/extensions", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Success    bool   `json:"success"`
		Extensions []Info `json:"extensions"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Extensions, 1)
	assert.Equal(t, "contrib", body.Extensions[0].Name)
}

const sampleManifest = `
name: Webring endpoint
homepageWidgets:
  - id: webring
    label: Webring
    description: Links to neighbouring sites
    icon: link
    defaultConfig:
      ringName: ""
    configSchema:
      ringName:
        type: text
        label: Ring name
homepageSections:
  - id: now
    label: Now
    defaultConfig:
      maxItems: 3
    configSchema:
      maxItems:
        type: number
        label: Max items
        min: 1
        max: 10
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "Webring endpoint", m.Name())
	require.Len(t, m.HomepageWidgets(), 1)
	assert.Equal(t, "webring", m.HomepageWidgets()[0].ID)
	assert.Equal(t, catalog.FieldText, m.HomepageWidgets()[0].ConfigSchema["ringName"].Type)

	require.Len(t, m.HomepageSections(), 1)
	s := m.HomepageSections()[0]
	assert.Equal(t, 3, s.DefaultConfig["maxItems"])
	require.NotNil(t, s.ConfigSchema["maxItems"].Max)
	assert.Equal(t, 10.0, *s.ConfigSchema["maxItems"].Max)
	assert.NoError(t, s.Validate())
}

func TestParseManifest_RequiresName(t *testing.T) {
	_, err := ParseManifest([]byte("homepageWidgets: []\n"))
	assert.Error(t, err)

	_, err = ParseManifest([]byte("name: [unterminated"))
	assert.Error(t, err)
}

func TestLoadManifests(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("name: B\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(sampleManifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("name: ignored\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755))

	ms, err := LoadManifests(dir)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, "Webring endpoint", ms[0].Name())
	assert.Equal(t, filepath.Join(dir, "a.yaml"), ms[0].Path())
	assert.Equal(t, "B", ms[1].Name())
}

func TestLoadManifests_MissingDir(t *testing.T) {
	ms, err := LoadManifests(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, ms)

	ms, err = LoadManifests("")
	require.NoError(t, err)
	assert.Empty(t, ms)
}

func TestLoadManifests_SkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-bad.yaml"), []byte("label: no name\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b-broken.yml"), []byte("name: [unterminated"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c-good.yaml"), []byte(sampleManifest), 0o644))

	ms, err := LoadManifests(dir)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, filepath.Join(dir, "c-good.yaml"), ms[0].Path())
}

func TestLoadManifests_UnreadableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := LoadManifests(file)
	assert.Error(t, err)
}
