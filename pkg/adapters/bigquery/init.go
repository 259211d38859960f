package bigquery

import (
	"log/slog"

	"github.com/leapstack-labs/ddlsync/pkg/adapter"
)

func init() {
	adapter.Register("bigquery", "bigquery", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
