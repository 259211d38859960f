package duckdb

import (
	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/leapstack-labs/ddlsync/pkg/dialect"
)

func init() {
	dialect.Register(DuckDB)
}

// DuckDB is the DuckDB dialect.
var DuckDB = dialect.NewDialect("duckdb").
	DefaultSchema("main").
	Identifiers(`"`, `"`, `""`).
	PlaceholderStyle(core.PlaceholderQuestion).
	Capabilities(Capabilities...).
	Types(Types).
	Build()
