package homepage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"github.com/darkden-lab/homepage/internal/logging"
	"github.com/darkden-lab/homepage/internal/metrics"
)

// Mirror receives every saved configuration after the document store has
// accepted it.
type Mirror interface {
	Write(ctx context.Context, cfg *Configuration) error
}

// MirrorPath is where the site build reads the configuration from.
func MirrorPath(contentDir string) string {
	return filepath.Join(contentDir, ".indiekit", "homepage.json")
}

// FileMirror writes the public projection of the configuration as
// indented JSON, replacing the file atomically so the build never reads a
// partial document.
type FileMirror struct {
	Path            string
	MaxTries        uint
	InitialInterval time.Duration

	log zerolog.Logger
}

func NewFileMirror(contentDir string, maxTries int) *FileMirror {
	if maxTries < 1 {
		maxTries = 1
	}
	return &FileMirror{
		Path:            MirrorPath(contentDir),
		MaxTries:        uint(maxTries),
		InitialInterval: 100 * time.Millisecond,
		log:             logging.Component("homepage-mirror"),
	}
}

func (m *FileMirror) Write(ctx context.Context, cfg *Configuration) error {
	data, err := json.MarshalIndent(Public(cfg), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mirror: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = m.InitialInterval

	attempt := 0
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		metrics.MirrorAttempts.Inc()
		if err := m.writeFile(data); err != nil {
			m.log.Warn().Err(err).Int("attempt", attempt).Str("path", m.Path).Msg("mirror write failed")
			return struct{}{}, err
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(m.MaxTries))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", m.Path, err)
	}

	m.log.Info().Str("path", m.Path).Msg("wrote homepage config")
	return nil
}

func (m *FileMirror) writeFile(data []byte) error {
	dir := filepath.Dir(m.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".homepage-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), m.Path)
}
