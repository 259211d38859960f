// Package engine orchestrates ddlsync: it loads table definitions, introspects
// the warehouse, plans every table and optionally applies the plans, keeping
// a history of runs in the state store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	intconfig "github.com/leapstack-labs/ddlsync/internal/config"
	"github.com/leapstack-labs/ddlsync/internal/loader"
	"github.com/leapstack-labs/ddlsync/internal/state"
	"github.com/leapstack-labs/ddlsync/pkg/adapter"
	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/leapstack-labs/ddlsync/pkg/dialect"
	"github.com/leapstack-labs/ddlsync/pkg/introspect"
	"github.com/leapstack-labs/ddlsync/pkg/reconcile"
)

// Engine orchestrates reconciliation for one target.
type Engine struct {
	// Database adapter (lazy initialized)
	db          adapter.Adapter
	dbConfig    adapter.Config
	dbConnected bool
	dbMu        sync.Mutex

	// State store (lazy initialized)
	store     state.Store
	statePath string
	storeMu   sync.Mutex

	dialect    *dialect.Dialect
	reconciler *reconcile.Reconciler
	loader     *loader.Loader

	tablesDir     string
	environment   string
	introspection introspect.Options
	logger        *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// TablesDir is the directory holding table definition files.
	TablesDir string
	// StatePath is the path to the SQLite state database.
	StatePath string
	// Environment names the environment runs are recorded under (default "dev").
	Environment string
	// Target selects the adapter and dialect.
	Target *core.TargetConfig
	// Introspection tunes catalog queries.
	Introspection *core.IntrospectionConfig
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger

	// Adapter, Dialect and Store replace the ones built from Target and
	// StatePath when set.
	Adapter adapter.Adapter
	Dialect *dialect.Dialect
	Store   state.Store
}

// New creates an engine. Neither the warehouse nor the state store is
// touched until a command needs them.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	target := cfg.Target
	if target == nil {
		target = &core.TargetConfig{}
	}
	intconfig.ApplyTargetDefaults(target)

	d := cfg.Dialect
	if d == nil {
		var err error
		if d, err = intconfig.ResolveDialect(target); err != nil {
			return nil, err
		}
	}

	env := cfg.Environment
	if env == "" {
		env = "dev"
	}

	var iopts introspect.Options
	if cfg.Introspection != nil {
		iopts.Concurrency = cfg.Introspection.Concurrency
		iopts.RateLimit = cfg.Introspection.RateLimit
	}

	logger.Debug("initializing engine",
		slog.String("tables_dir", cfg.TablesDir),
		slog.String("environment", env),
		slog.String("dialect", d.Name),
		slog.String("capabilities", d.Capabilities.String()))

	return &Engine{
		db:            cfg.Adapter,
		dbConfig:      intconfig.AdapterConfig(target),
		store:         cfg.Store,
		statePath:     cfg.StatePath,
		dialect:       d,
		reconciler:    reconcile.New(d, reconcile.WithLogger(logger)),
		loader:        loader.New(d, logger),
		tablesDir:     cfg.TablesDir,
		environment:   env,
		introspection: iopts,
		logger:        logger,
	}, nil
}

// ensureDBConnected lazily creates and connects the adapter.
func (e *Engine) ensureDBConnected(ctx context.Context) error {
	e.dbMu.Lock()
	defer e.dbMu.Unlock()

	if e.dbConnected {
		return nil
	}

	if e.db == nil {
		db, err := adapter.NewAdapter(e.dbConfig, e.logger)
		if err != nil {
			return fmt.Errorf("failed to create database adapter: %w", err)
		}
		e.db = db
	}

	e.logger.Debug("connecting to database", slog.String("adapter_type", e.dbConfig.Type))

	if err := e.db.Connect(ctx, e.dbConfig); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	e.dbConnected = true
	return nil
}

// ensureStore lazily opens the state store.
func (e *Engine) ensureStore() (state.Store, error) {
	e.storeMu.Lock()
	defer e.storeMu.Unlock()

	if e.store != nil {
		return e.store, nil
	}
	if e.statePath == "" {
		return nil, fmt.Errorf("state path is not configured")
	}

	store := state.NewSQLiteStore(e.logger)
	if err := store.Open(e.statePath); err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	e.store = store
	return store, nil
}

// Close releases all resources.
func (e *Engine) Close() error {
	e.logger.Debug("closing engine")

	var errs []error
	if e.dbConnected {
		if err := e.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("errors closing engine: %w", err)
	}
	return nil
}

// Dialect returns the dialect with capability overrides applied.
func (e *Engine) Dialect() *dialect.Dialect {
	return e.dialect
}

// Environment returns the environment runs are recorded under.
func (e *Engine) Environment() string {
	return e.environment
}

// Load loads and validates every table definition.
func (e *Engine) Load() (*loader.Result, error) {
	return e.loader.LoadDir(e.tablesDir)
}

// introspector builds an introspector over the connected adapter.
func (e *Engine) introspector() *introspect.Introspector {
	return introspect.New(e.db, e.db.DefaultNamespace(), e.introspection, e.logger)
}

// Inspect returns the current state of the named objects.
func (e *Engine) Inspect(ctx context.Context, names []string) (*core.Snapshot, error) {
	if err := e.ensureDBConnected(ctx); err != nil {
		return nil, err
	}
	return e.introspector().IntrospectNames(ctx, names...)
}
