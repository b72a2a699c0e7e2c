package extension

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/darkden-lab/homepage/internal/logging"
	"github.com/darkden-lab/homepage/internal/storage"
)

var (
	ErrSealed             = errors.New("extension host is sealed")
	ErrDuplicateExtension = errors.New("extension is already registered")
	ErrUnnamedExtension   = errors.New("extension must have a name")
)

// ReadyFunc runs once every extension has registered.
type ReadyFunc func(ctx context.Context) error

// Host boots extensions in two phases. Register adds extensions one at a
// time; Ready seals the host and runs the ready hooks, after which the
// extension list no longer changes.
type Host struct {
	backend storage.Backend
	log     zerolog.Logger

	mu          sync.RWMutex
	endpoints   []Extension
	names       map[string]bool
	collections map[string]storage.Collection
	hooks       []ReadyFunc
	sealed      bool
}

func NewHost(backend storage.Backend) *Host {
	return &Host{
		backend:     backend,
		log:         logging.Component("extension-host"),
		names:       make(map[string]bool),
		collections: make(map[string]storage.Collection),
	}
}

// Register adds ext and runs its Init, if any. Init may itself call
// AddCollection and OnReady.
func (h *Host) Register(ext Extension) error {
	name := ext.Name()
	if name == "" {
		return ErrUnnamedExtension
	}

	h.mu.Lock()
	if h.sealed {
		h.mu.Unlock()
		return fmt.Errorf("register %q: %w", name, ErrSealed)
	}
	if h.names[name] {
		h.mu.Unlock()
		return fmt.Errorf("register %q: %w", name, ErrDuplicateExtension)
	}
	h.names[name] = true
	h.endpoints = append(h.endpoints, ext)
	h.mu.Unlock()

	if init, ok := ext.(Initializer); ok {
		if err := init.Init(h); err != nil {
			h.remove(ext)
			return fmt.Errorf("failed to initialise extension %q: %w", name, err)
		}
	}

	h.log.Debug().Str("extension", name).Msg("extension registered")
	return nil
}

func (h *Host) remove(ext Extension) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, e := range h.endpoints {
		if e == ext {
			h.endpoints = append(h.endpoints[:i], h.endpoints[i+1:]...)
			break
		}
	}
	delete(h.names, ext.Name())
}

// AddCollection returns the named persistent collection, creating the
// handle on first use.
func (h *Host) AddCollection(name string) (storage.Collection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.backend == nil {
		return nil, fmt.Errorf("collection %q: no storage backend configured", name)
	}
	if c, ok := h.collections[name]; ok {
		return c, nil
	}
	c := h.backend.Collection(name)
	h.collections[name] = c
	return c, nil
}

// OnReady queues fn to run when Ready is called.
func (h *Host) OnReady(fn ReadyFunc) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sealed {
		return ErrSealed
	}
	h.hooks = append(h.hooks, fn)
	return nil
}

// Ready is the barrier between registration and serving. It seals the host
// and runs every ready hook in registration order. Calling Ready twice is
// an error.
func (h *Host) Ready(ctx context.Context) error {
	h.mu.Lock()
	if h.sealed {
		h.mu.Unlock()
		return ErrSealed
	}
	h.sealed = true
	hooks := append([]ReadyFunc(nil), h.hooks...)
	count := len(h.endpoints)
	h.mu.Unlock()

	h.log.Info().Int("extensions", count).Msg("all extensions registered")

	var errs []error
	for _, fn := range hooks {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Sealed reports whether Ready has been called.
func (h *Host) Sealed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sealed
}

// Endpoints returns the registered extensions in registration order.
func (h *Host) Endpoints() []Extension {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Extension(nil), h.endpoints...)
}

// Info summarises one registered extension.
type Info struct {
	Name       string    `json:"name"`
	Sections   int       `json:"sections"`
	Widgets    int       `json:"widgets"`
	Navigation []NavItem `json:"navigation"`
}

func (h *Host) Describe() []Info {
	endpoints := h.Endpoints()
	infos := make([]Info, 0, len(endpoints))
	for _, ext := range endpoints {
		nav := Navigation(ext)
		if nav == nil {
			nav = []NavItem{}
		}
		infos = append(infos, Info{
			Name:       ext.Name(),
			Sections:   len(Sections(ext)),
			Widgets:    len(Widgets(ext)),
			Navigation: nav,
		})
	}
	return infos
}
