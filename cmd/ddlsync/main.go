// Package main provides the ddlsync command.
package main

import (
	"os"

	"github.com/leapstack-labs/ddlsync/internal/cli"

	// Register adapters (and their dialects) via init()
	_ "github.com/leapstack-labs/ddlsync/pkg/adapters/bigquery"
	_ "github.com/leapstack-labs/ddlsync/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/ddlsync/pkg/adapters/postgres"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
