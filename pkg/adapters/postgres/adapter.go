// Package postgres provides a PostgreSQL database adapter for ddlsync.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/leapstack-labs/ddlsync/pkg/adapter"
	"github.com/leapstack-labs/ddlsync/pkg/core"
	pgdialect "github.com/leapstack-labs/ddlsync/pkg/dialects/postgres"
)

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
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
	return pgdialect.Postgres.Name
}

// DefaultNamespace returns the configured schema, falling back to "public".
func (a *Adapter) DefaultNamespace() string {
	if a.Cfg.Schema != "" {
		return a.Cfg.Schema
	}
	return pgdialect.Postgres.DefaultSchema
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	connCfg, err := pgx.ParseConfig(buildPostgresDSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to parse postgres connection config: %w", err)
	}

	a.Logger.Debug("connecting to postgres", slog.String("host", connCfg.Host), slog.String("database", connCfg.Database))

	db := stdlib.OpenDB(*connCfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// QueryCatalog implements adapter.Adapter.
func (a *Adapter) QueryCatalog(ctx context.Context, namespace string, objects []string) ([]core.CatalogObject, error) {
	return a.QueryCatalogCommon(ctx, pgdialect.Postgres, namespace, objects)
}

// buildPostgresDSN constructs a key=value PostgreSQL connection string.
// Options other than sslmode are appended in key order.
func buildPostgresDSN(cfg adapter.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslmode := "disable"
	if mode, ok := cfg.Options["sslmode"]; ok {
		sslmode = mode
	}

	parts := []string{
		"host=" + host,
		fmt.Sprintf("port=%d", port),
		"dbname=" + cfg.Database,
		"sslmode=" + sslmode,
	}
	if cfg.Username != "" {
		parts = append(parts, "user="+cfg.Username)
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+dsnValue(cfg.Password))
	}

	keys := make([]string, 0, len(cfg.Options))
	for k := range cfg.Options {
		if k != "sslmode" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+dsnValue(cfg.Options[k]))
	}
	return strings.Join(parts, " ")
}

// dsnValue quotes a value containing spaces or quotes.
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
