// Package config provides shared configuration defaults and target
// validation for ddlsync. It is decoupled from CLI concerns.
package config

import (
	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/leapstack-labs/ddlsync/pkg/dialect"
)

// Default configuration values.
const (
	DefaultTablesDir    = "tables"
	DefaultTargetType   = "duckdb"
	DefaultConcurrency  = 4
	DefaultPostgresPort = 5432
)

// ApplyDefaults applies default values to a ProjectConfig.
func ApplyDefaults(c *core.ProjectConfig) {
	if c == nil {
		return
	}
	if c.TablesDir == "" {
		c.TablesDir = DefaultTablesDir
	}
	if c.Introspection == nil {
		c.Introspection = &core.IntrospectionConfig{}
	}
	ApplyIntrospectionDefaults(c.Introspection)
	ApplyTargetDefaults(c.Target)
}

// ApplyIntrospectionDefaults applies default values to an IntrospectionConfig.
func ApplyIntrospectionDefaults(c *core.IntrospectionConfig) {
	if c == nil {
		return
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.RateLimit < 0 {
		c.RateLimit = 0
	}
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *core.TargetConfig) {
	if t == nil {
		return
	}
	if t.Type == "" {
		t.Type = DefaultTargetType
	}
	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}
	if t.Type == "postgres" && t.Port == 0 {
		t.Port = DefaultPostgresPort
	}
}

// DefaultSchemaForType returns the default schema for a database type.
// Dialects without a default schema (BigQuery datasets) yield "".
func DefaultSchemaForType(dbType string) string {
	if d, ok := dialect.Get(dbType); ok {
		return d.DefaultSchema
	}
	return ""
}
