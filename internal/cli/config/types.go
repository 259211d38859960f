// Package config provides configuration management for the ddlsync CLI.
//
// The shared target and introspection types are defined in pkg/core and
// re-exported here via type aliases.
package config

import (
	sharedcfg "github.com/leapstack-labs/ddlsync/internal/config"
	"github.com/leapstack-labs/ddlsync/pkg/core"
)

// TargetConfig is an alias for the shared target configuration.
type TargetConfig = core.TargetConfig

// IntrospectionConfig is an alias for the shared introspection configuration.
type IntrospectionConfig = core.IntrospectionConfig

// Config holds all CLI configuration options.
type Config struct {
	TablesDir     string               `koanf:"tables_dir"`
	StatePath     string               `koanf:"state_path"`
	Environment   string               `koanf:"environment"`
	Verbose       bool                 `koanf:"verbose"`
	OutputFormat  string               `koanf:"output"`
	Target        *TargetConfig        `koanf:"target"`
	Introspection *IntrospectionConfig `koanf:"introspection"`
	Environments  map[string]EnvConfig `koanf:"environments"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	TablesDir string        `koanf:"tables_dir"`
	Target    *TargetConfig `koanf:"target"`
}

// Project returns the shared project view of the configuration.
func (c *Config) Project() *core.ProjectConfig {
	return &core.ProjectConfig{
		TablesDir:     c.TablesDir,
		Target:        c.Target,
		Introspection: c.Introspection,
	}
}

// Default configuration values.
const (
	DefaultTablesDir = sharedcfg.DefaultTablesDir
	DefaultStateFile = ".ddlsync/state.db"
	DefaultEnv       = "dev"
	DefaultOutput    = "auto" // TTY=text, non-TTY=markdown
)
