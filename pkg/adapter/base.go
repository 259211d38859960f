package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/leapstack-labs/ddlsync/pkg/dialect"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Exec and catalog query implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string) error {
	if b.DB == nil {
		return fmt.Errorf("database connection not established")
	}
	if b.Logger != nil {
		b.Logger.Debug("executing statement", slog.String("sql", sqlStr))
	}
	_, err := b.DB.ExecContext(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// QueryCatalogCommon provides a shared implementation of QueryCatalog.
// It runs the dialect's catalog query and groups the per-column rows into
// one CatalogObject per object, in the order the query returns them.
func (b *BaseSQLAdapter) QueryCatalogCommon(ctx context.Context, d *dialect.Dialect, namespace string, objects []string) ([]core.CatalogObject, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	if len(objects) == 0 {
		return nil, nil
	}

	query, args := d.CatalogQuery(namespace, objects)
	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rs []CatalogRow
	for rows.Next() {
		var (
			r       CatalogRow
			ordinal sql.NullInt64
		)
		if err := rows.Scan(&r.Object, &r.Type, &r.Column, &r.IsPartition, &ordinal); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		if ordinal.Valid {
			n := int(ordinal.Int64)
			r.ClusterOrdinal = &n
		}
		rs = append(rs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog rows: %w", err)
	}

	return GroupCatalogRows(rs), nil
}

// CatalogRow is one (object, column) row of a catalog query.
type CatalogRow struct {
	Object         string
	Type           string
	Column         string
	IsPartition    bool
	ClusterOrdinal *int
}

// GroupCatalogRows folds catalog rows into objects, keeping first-seen order.
// Rows of unknown object types yield objects of kind ObjectUnknown.
func GroupCatalogRows(rows []CatalogRow) []core.CatalogObject {
	var out []core.CatalogObject
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.Object]
		if !ok {
			i = len(out)
			index[r.Object] = i
			out = append(out, core.CatalogObject{Name: r.Object, Kind: core.ParseObjectKind(r.Type)})
		}
		if r.Column == "" {
			continue
		}
		out[i].Columns = append(out[i].Columns, core.CatalogColumn{
			Name:           r.Column,
			IsPartition:    r.IsPartition,
			ClusterOrdinal: r.ClusterOrdinal,
		})
	}
	return out
}
