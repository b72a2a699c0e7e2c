package homepage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/darkden-lab/homepage/internal/logging"
	"github.com/darkden-lab/homepage/internal/metrics"
	"github.com/darkden-lab/homepage/internal/storage"
)

// MirrorError means the document store holds the new configuration but
// the build mirror could not be updated.
type MirrorError struct {
	Err error
}

func (e *MirrorError) Error() string {
	return "configuration stored but build mirror not updated: " + e.Err.Error()
}

func (e *MirrorError) Unwrap() error { return e.Err }

// Store reads and writes the single homepage configuration document.
// Writes replace the whole document; concurrent editors overwrite each
// other.
type Store struct {
	coll   storage.Collection
	mirror Mirror
	now    func() time.Time
	log    zerolog.Logger
}

// NewStore returns a store over coll. A nil mirror disables mirroring.
func NewStore(coll storage.Collection, mirror Mirror) *Store {
	return &Store{
		coll:   coll,
		mirror: mirror,
		now:    time.Now,
		log:    logging.Component("homepage-store"),
	}
}

// Load returns the stored configuration, or nil if none has been saved.
func (s *Store) Load(ctx context.Context) (*Configuration, error) {
	data, err := s.coll.FindOne(ctx, DocumentID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load homepage config: %w", err)
	}

	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode homepage config: %w", err)
	}
	cfg.ID = DocumentID
	return &cfg, nil
}

// Save decodes submitted fields and stores them.
func (s *Store) Save(ctx context.Context, in Input) (*Configuration, error) {
	cfg, err := Decode(in)
	if err != nil {
		metrics.ConfigSaves.WithLabelValues(metrics.SaveInputError).Inc()
		return nil, err
	}
	return s.SaveConfiguration(ctx, cfg)
}

// SaveConfiguration applies defaults, stamps updatedAt, replaces the stored
// document and refreshes the mirror. The returned document is the stored
// one as a reader would load it. On a mirror failure both the document and
// a *MirrorError are returned.
func (s *Store) SaveConfiguration(ctx context.Context, cfg *Configuration) (*Configuration, error) {
	doc := cfg.withDefaults()
	doc.ID = DocumentID
	ts := s.now().UTC()
	doc.UpdatedAt = &ts

	data, err := json.Marshal(doc)
	if err != nil {
		metrics.ConfigSaves.WithLabelValues(metrics.SaveInputError).Inc()
		return nil, fmt.Errorf("failed to encode homepage config: %w", err)
	}
	if err := s.coll.ReplaceOne(ctx, DocumentID, data); err != nil {
		metrics.ConfigSaves.WithLabelValues(metrics.SaveStoreError).Inc()
		return nil, fmt.Errorf("failed to save homepage config: %w", err)
	}

	var stored Configuration
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode homepage config: %w", err)
	}

	if s.mirror != nil {
		if err := s.mirror.Write(ctx, &stored); err != nil {
			metrics.ConfigSaves.WithLabelValues(metrics.SaveMirrorError).Inc()
			s.log.Error().Err(err).Msg("homepage config saved without mirror")
			return &stored, &MirrorError{Err: err}
		}
	}

	metrics.ConfigSaves.WithLabelValues(metrics.SaveOK).Inc()
	return &stored, nil
}
