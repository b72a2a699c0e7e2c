package extension

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/darkden-lab/homepage/internal/catalog"
	"github.com/darkden-lab/homepage/internal/logging"
)

// Manifest is an extension declared in a YAML file instead of code. It
// contributes descriptors and nothing else.
type Manifest struct {
	ExtensionName string               `yaml:"name"`
	Sections      []catalog.Descriptor `yaml:"homepageSections"`
	Widgets       []catalog.Descriptor `yaml:"homepageWidgets"`
	Navigation    []NavItem            `yaml:"navigation"`

	path string
}

func (m *Manifest) Name() string { return m.ExtensionName }

func (m *Manifest) HomepageSections() []catalog.Descriptor { return m.Sections }

func (m *Manifest) HomepageWidgets() []catalog.Descriptor { return m.Widgets }

func (m *Manifest) NavigationItems() []NavItem { return m.Navigation }

// Path is the file the manifest was read from.
func (m *Manifest) Path() string { return m.path }

// ParseManifest decodes one manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	m.ExtensionName = strings.TrimSpace(m.ExtensionName)
	if m.ExtensionName == "" {
		return nil, errors.New("invalid manifest: name is required")
	}
	return &m, nil
}

// LoadManifests reads every *.yaml and *.yml file in dir, sorted by file
// name. A missing directory yields no manifests. Files that cannot be read
// or parsed are logged and skipped.
func LoadManifests(dir string) ([]*Manifest, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read extensions dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	log := logging.Component("extension-manifest")
	manifests := make([]*Manifest, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		m, err := readManifest(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping extension manifest")
			continue
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}

func readManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	m.path = path
	return m, nil
}
