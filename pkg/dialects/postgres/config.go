// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package postgres

import "github.com/leapstack-labs/ddlsync/pkg/core"

// Capabilities declared by PostgreSQL.
// There is no CREATE OR REPLACE TABLE, and dependent views block a plain drop.
var Capabilities = []core.Capability{
	core.CanReplaceView,
	core.NeedsCascadeDrop,
	core.CannotSpecifyDDLInSelect,
}

// Types maps logical column kinds to PostgreSQL types.
var Types = map[core.ColumnKind]string{
	core.KindString:    "TEXT",
	core.KindInteger:   "BIGINT",
	core.KindFloat:     "DOUBLE PRECISION",
	core.KindNumeric:   "NUMERIC",
	core.KindTimestamp: "TIMESTAMPTZ",
	core.KindBytes:     "BYTEA",
	core.KindBoolean:   "BOOLEAN",
	core.KindDate:      "DATE",
	core.KindTime:      "TIME",
	core.KindInterval:  "INTERVAL",
	core.KindArray:     "TEXT[]",
	core.KindJSON:      "JSONB",
	core.KindUUID:      "UUID",
}
