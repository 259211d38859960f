// Package bigquery provides the BigQuery SQL dialect definition.
// This package is pure Go with no client library dependencies.
package bigquery

import "github.com/leapstack-labs/ddlsync/pkg/core"

// Capabilities declared by BigQuery.
var Capabilities = []core.Capability{
	core.CanReplaceTable,
	core.CanReplaceView,
	core.CannotChangeSchema,
	core.SupportsPartition,
	core.SupportsCluster,
}

// Types maps logical column kinds to BigQuery standard SQL types.
var Types = map[core.ColumnKind]string{
	core.KindString:    "STRING",
	core.KindInteger:   "INT64",
	core.KindFloat:     "FLOAT64",
	core.KindNumeric:   "NUMERIC",
	core.KindTimestamp: "TIMESTAMP",
	core.KindBytes:     "BYTES",
	core.KindBoolean:   "BOOL",
	core.KindDate:      "DATE",
	core.KindTime:      "TIME",
	core.KindInterval:  "INTERVAL",
	core.KindArray:     "ARRAY<STRING>",
	core.KindJSON:      "JSON",
	core.KindUUID:      "STRING",
}
