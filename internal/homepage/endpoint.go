package homepage

import (
	"context"
	"os"

	"github.com/darkden-lab/homepage/internal/catalog"
	"github.com/darkden-lab/homepage/internal/extension"
	"github.com/darkden-lab/homepage/internal/registry"
)

const (
	EndpointName      = "Homepage builder endpoint"
	DefaultMountPath  = "/homepage"
	DefaultContentDir = "/app/data/content"
)

type Options struct {
	MountPath   string
	ContentDir  string
	MirrorTries int
}

// Application is the state the endpoint shares with its handlers once it
// has been registered with a host.
type Application struct {
	MountPath  string
	ContentDir string
	Presets    []Preset
	Store      *Store
	Registry   *registry.Registry
}

// Endpoint is the homepage builder extension. It contributes the built-in
// sections and widgets and, once every extension has registered, discovers
// the ones contributed by the others.
type Endpoint struct {
	opts Options
	app  *Application
}

func NewEndpoint(opts Options) *Endpoint {
	if opts.MountPath == "" {
		opts.MountPath = DefaultMountPath
	}
	if opts.ContentDir == "" {
		opts.ContentDir = os.Getenv("CONTENT_DIR")
	}
	if opts.ContentDir == "" {
		opts.ContentDir = DefaultContentDir
	}
	if opts.MirrorTries < 1 {
		opts.MirrorTries = 3
	}
	return &Endpoint{
		opts: opts,
		app: &Application{
			MountPath:  opts.MountPath,
			ContentDir: opts.ContentDir,
			Presets:    BuiltinPresets(),
			Registry:   registry.New(),
		},
	}
}

func (e *Endpoint) Name() string { return EndpointName }

func (e *Endpoint) HomepageSections() []catalog.Descriptor { return catalog.BuiltinSections() }

func (e *Endpoint) HomepageWidgets() []catalog.Descriptor { return catalog.BuiltinWidgets() }

func (e *Endpoint) NavigationItems() []extension.NavItem {
	return []extension.NavItem{{Label: "Homepage", Icon: "home", Path: e.opts.MountPath}}
}

// Init opens the configuration collection and defers discovery until the
// host is ready.
func (e *Endpoint) Init(h *extension.Host) error {
	coll, err := h.AddCollection(CollectionName)
	if err != nil {
		return err
	}
	e.app.Store = NewStore(coll, NewFileMirror(e.opts.ContentDir, e.opts.MirrorTries))

	return h.OnReady(func(ctx context.Context) error {
		e.app.Registry.Discover(e, h.Endpoints())
		return nil
	})
}

func (e *Endpoint) Application() *Application { return e.app }

func (e *Endpoint) Handlers() *Handlers { return NewHandlers(e.app) }
