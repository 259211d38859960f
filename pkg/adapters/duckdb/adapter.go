// Package duckdb provides a DuckDB database adapter for ddlsync.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/leapstack-labs/ddlsync/pkg/adapter"
	"github.com/leapstack-labs/ddlsync/pkg/core"
	duckdbdialect "github.com/leapstack-labs/ddlsync/pkg/dialects/duckdb"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return duckdbdialect.DuckDB.Name
}

// DefaultNamespace returns the configured schema, falling back to "main".
func (a *Adapter) DefaultNamespace() string {
	if a.Cfg.Schema != "" {
		return a.Cfg.Schema
	}
	return duckdbdialect.DuckDB.DefaultSchema
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	params, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}

	path := cfg.Path
	if path == "" {
		path = cfg.Database
	}
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to duckdb", slog.String("path", path))

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.DB = db
	a.Cfg = cfg

	for _, stmt := range setupStatements(params) {
		if err := a.Exec(ctx, stmt); err != nil {
			_ = a.Close()
			a.DB = nil
			return fmt.Errorf("failed to prepare duckdb session: %w", err)
		}
	}
	return nil
}

// QueryCatalog implements adapter.Adapter.
func (a *Adapter) QueryCatalog(ctx context.Context, namespace string, objects []string) ([]core.CatalogObject, error) {
	return a.QueryCatalogCommon(ctx, duckdbdialect.DuckDB, namespace, objects)
}

// setupStatements returns the session statements derived from params:
// extensions first, then settings in key order, then secrets.
func setupStatements(p *Params) []string {
	var stmts []string
	for _, ext := range p.Extensions {
		stmts = append(stmts, "INSTALL "+ext, "LOAD "+ext)
	}

	keys := make([]string, 0, len(p.Settings))
	for k := range p.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		stmts = append(stmts, fmt.Sprintf("SET %s = %s", k, quote(p.Settings[k])))
	}

	for i, s := range p.Secrets {
		stmts = append(stmts, createSecret(fmt.Sprintf("ddlsync_secret_%d", i), s))
	}
	return stmts
}

func createSecret(name string, s SecretConfig) string {
	opts := []string{"TYPE " + s.Type}
	add := func(key, value string) {
		if value != "" {
			opts = append(opts, key+" "+quote(value))
		}
	}
	add("PROVIDER", s.Provider)
	add("REGION", s.Region)
	add("KEY_ID", s.KeyID)
	add("SECRET", s.Secret)
	add("ENDPOINT", s.Endpoint)
	add("URL_STYLE", s.URLStyle)
	if s.UseSSL != nil {
		opts = append(opts, fmt.Sprintf("USE_SSL %t", *s.UseSSL))
	}
	switch scope := s.Scope.(type) {
	case string:
		add("SCOPE", scope)
	case []any:
		for _, v := range scope {
			add("SCOPE", fmt.Sprint(v))
		}
	case []string:
		for _, v := range scope {
			add("SCOPE", v)
		}
	}
	return fmt.Sprintf("CREATE OR REPLACE SECRET %s (%s)", name, strings.Join(opts, ", "))
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
