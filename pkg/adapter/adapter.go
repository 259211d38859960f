// Package adapter provides database adapter interfaces and the shared
// database/sql implementation used by ddlsync's warehouse adapters.
//
// This package contains the public contract that all database adapters must implement.
// Concrete adapter implementations are in pkg/adapters/ subdirectories.
// Core types (Adapter, Config) are defined in pkg/core and aliased here.
package adapter

import (
	"github.com/leapstack-labs/ddlsync/pkg/core"
)

type (
	// Adapter is an alias for core.Adapter.
	Adapter = core.Adapter

	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig
)
