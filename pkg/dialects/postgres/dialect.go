package postgres

import (
	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/leapstack-labs/ddlsync/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// Postgres is the PostgreSQL dialect. It uses the shared create template
// and the information_schema catalog query.
var Postgres = dialect.NewDialect("postgres").
	DefaultSchema("public").
	Identifiers(`"`, `"`, `""`).
	PlaceholderStyle(core.PlaceholderDollar).
	Capabilities(Capabilities...).
	Types(Types).
	Build()
