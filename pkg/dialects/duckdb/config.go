// Package duckdb provides the DuckDB SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package duckdb

import "github.com/leapstack-labs/ddlsync/pkg/core"

// Capabilities declared by DuckDB. CREATE TABLE ... AS rejects a column list.
var Capabilities = []core.Capability{
	core.CanReplaceTable,
	core.CanReplaceView,
	core.CannotSpecifyDDLInSelect,
}

// Types maps logical column kinds to DuckDB types.
var Types = map[core.ColumnKind]string{
	core.KindString:    "VARCHAR",
	core.KindInteger:   "BIGINT",
	core.KindFloat:     "DOUBLE",
	core.KindNumeric:   "DECIMAL(38,9)",
	core.KindTimestamp: "TIMESTAMP",
	core.KindBytes:     "BLOB",
	core.KindBoolean:   "BOOLEAN",
	core.KindDate:      "DATE",
	core.KindTime:      "TIME",
	core.KindInterval:  "INTERVAL",
	core.KindArray:     "VARCHAR[]",
	core.KindJSON:      "JSON",
	core.KindUUID:      "UUID",
}
