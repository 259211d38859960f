package postgres

import (
	"log/slog"

	"github.com/leapstack-labs/ddlsync/pkg/adapter"
)

func init() {
	adapter.Register("postgres", "postgres", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
