// Package lifecycle drives artworks through their states: upload,
// analysis, editing, finalisation, locking, and deletion.
package lifecycle

import (
	"context"
	"log/slog"
	"strings"

	"ezygallery/internal/config"
	"ezygallery/internal/events"
	"ezygallery/internal/listing"
	"ezygallery/internal/logging"
	"ezygallery/internal/services"
	"ezygallery/internal/sku"
	"ezygallery/internal/store"
)

// Analyzer produces a listing document for an artwork image. The default
// implementation shells out to the configured analyze command, which
// writes "<stem>-listing.json" next to the image.
type Analyzer interface {
	Analyze(ctx context.Context, imagePath, logPath string) error
}

// CompositeGenerator renders mockup composites. Aliased from the store so
// both packages speak the same contract.
type CompositeGenerator = store.CompositeGenerator

// Manager coordinates every lifecycle operation. All state lives on disk
// and in the events database; the manager itself is stateless.
type Manager struct {
	cfg        *config.Config
	store      *store.Store
	sku        *sku.Allocator
	analyzer   Analyzer
	compositor CompositeGenerator
	events     *events.Store
	logger     *slog.Logger
}

func NewManager(
	cfg *config.Config,
	st *store.Store,
	alloc *sku.Allocator,
	analyzer Analyzer,
	compositor CompositeGenerator,
	ev *events.Store,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		cfg:        cfg,
		store:      st,
		sku:        alloc,
		analyzer:   analyzer,
		compositor: compositor,
		events:     ev,
		logger:     logging.NewComponentLogger(logger, "lifecycle"),
	}
}

// Store exposes the underlying artwork store.
func (m *Manager) Store() *store.Store { return m.store }

// Allocator exposes the SKU allocator.
func (m *Manager) Allocator() *sku.Allocator { return m.sku }

// Events exposes the events database, nil when none was wired in.
func (m *Manager) Events() *events.Store { return m.events }

// Compositor exposes the mockup composite generator.
func (m *Manager) Compositor() CompositeGenerator { return m.compositor }

// ValidationError carries the full ordered list of validation messages
// for a rejected edit.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error { return services.ErrValidation }

// requireUnlocked fails with ErrLocked when either lock signal is set for
// the listing at listingPath.
func (m *Manager) requireUnlocked(operation, listingPath string) error {
	state, err := listing.LockInfo(listingPath)
	if err != nil {
		return err
	}
	if state.Locked {
		return services.Wrap(services.ErrLocked, "lifecycle", operation, "artwork is locked", nil)
	}
	return nil
}
