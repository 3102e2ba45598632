package market

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Store holds the current market table and allows it to be swapped while
// readers are active. Tables themselves are never mutated.
type Store struct {
	mu    sync.RWMutex
	table *Table
}

// NewStore wraps an initial table.
func NewStore(table *Table) *Store {
	return &Store{table: table}
}

// Table returns the current table.
func (s *Store) Table() *Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Replace swaps in a new table.
func (s *Store) Replace(table *Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
}

// Loader produces a fresh market table.
type Loader func() (*Table, error)

// FileLoader loads the table from path, or the bundled table when path is empty.
func FileLoader(path string) Loader {
	if path == "" {
		return Default
	}
	return func() (*Table, error) {
		return LoadFile(path)
	}
}

// Refresher reloads a Store on a cron schedule. A failed reload keeps the
// current table.
type Refresher struct {
	store  *Store
	load   Loader
	cron   *cron.Cron
	logger *zap.Logger
}

// NewRefresher schedules reloads using a standard five-field cron spec or a
// descriptor such as "@hourly".
func NewRefresher(store *Store, schedule string, load Loader, logger *zap.Logger) (*Refresher, error) {
	if store == nil {
		return nil, errors.New("refresher requires a store")
	}
	if load == nil {
		return nil, errors.New("refresher requires a loader")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Refresher{
		store:  store,
		load:   load,
		cron:   cron.New(),
		logger: logger,
	}
	if _, err := r.cron.AddFunc(schedule, func() {
		_ = r.Refresh()
	}); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Refresh reloads the table immediately.
func (r *Refresher) Refresh() error {
	table, err := r.load()
	if err != nil {
		r.logger.Warn("market data refresh failed; keeping current table",
			zap.String("op", "market.Refresh"),
			zap.Error(err),
		)
		return err
	}
	r.store.Replace(table)
	r.logger.Info("market data refreshed",
		zap.String("op", "market.Refresh"),
		zap.Int("regions", len(table.fixture.Regions)),
	)
	return nil
}

// Start begins running scheduled refreshes in the background.
func (r *Refresher) Start() {
	r.cron.Start()
	r.logger.Debug("market data refresher started", zap.String("op", "market.Start"))
}

// Stop halts the schedule. The returned context is done once any running
// refresh has finished.
func (r *Refresher) Stop() context.Context {
	return r.cron.Stop()
}
