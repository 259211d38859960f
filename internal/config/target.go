package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ddlsync/pkg/adapter"
	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/leapstack-labs/ddlsync/pkg/dialect"
)

// ValidateTarget checks a target against the adapter registry and resolves
// its capability overrides, so that unknown adapters and unknown capability
// names fail at configuration time.
func ValidateTarget(t *core.TargetConfig) error {
	if t == nil {
		return fmt.Errorf("target is required")
	}
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}
	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}
	if _, err := ResolveDialect(t); err != nil {
		return err
	}
	if strings.EqualFold(t.Type, "bigquery") && t.Project == "" && t.Database == "" {
		return fmt.Errorf("bigquery target requires project")
	}
	return nil
}

// ResolveDialect returns the target's dialect with capability overrides applied.
func ResolveDialect(t *core.TargetConfig) (*dialect.Dialect, error) {
	reg, ok := adapter.Get(strings.ToLower(t.Type))
	if !ok {
		return nil, &adapter.UnknownAdapterError{Type: t.Type, Available: adapter.ListAdapters()}
	}
	d, ok := dialect.Get(reg.Dialect)
	if !ok {
		return nil, fmt.Errorf("adapter %s speaks unregistered dialect %s", reg.Name, reg.Dialect)
	}
	if t.Capabilities == nil {
		return d, nil
	}
	caps, err := t.Capabilities.Apply(d.Capabilities)
	if err != nil {
		return nil, fmt.Errorf("invalid capability override for target %s: %w", t.Type, err)
	}
	return d.WithCapabilities(caps), nil
}

// AdapterConfig converts a target into the adapter connection config.
func AdapterConfig(t *core.TargetConfig) core.AdapterConfig {
	cfg := core.AdapterConfig{
		Type:     strings.ToLower(t.Type),
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Project:  t.Project,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
		Params:   t.Params,
	}
	if cfg.Type == "duckdb" {
		cfg.Path = t.Database
	}
	return cfg
}
