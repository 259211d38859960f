package core

// ProjectConfig holds project-level configuration.
type ProjectConfig struct {
	TablesDir     string               `koanf:"tables_dir"`
	Target        *TargetConfig        `koanf:"target"`
	Introspection *IntrospectionConfig `koanf:"introspection"`
}

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // bigquery, duckdb, postgres

	// File-based databases (DuckDB)
	Database string `koanf:"database"` // file path or database name

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Common: default schema (dataset for BigQuery)
	Schema string `koanf:"schema"`

	// BigQuery-specific
	Project string `koanf:"project"`

	// Capabilities adjusts the dialect's declared capability set
	Capabilities *CapabilityOverrides `koanf:"capabilities"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`

	// Params holds adapter-specific configuration (e.g., DuckDB settings, BigQuery location)
	Params map[string]any `koanf:"params"`
}

// CapabilityOverrides adds or removes dialect capabilities by name.
type CapabilityOverrides struct {
	Add    []string `koanf:"add"`
	Remove []string `koanf:"remove"`
}

// Apply returns base adjusted by the overrides.
// Unknown names fail with *UnknownCapabilityError.
func (o *CapabilityOverrides) Apply(base CapabilitySet) (CapabilitySet, error) {
	if o == nil {
		return base, nil
	}
	out := base
	for _, n := range o.Add {
		c, err := ParseCapability(n)
		if err != nil {
			return base, err
		}
		out = out.With(c)
	}
	for _, n := range o.Remove {
		c, err := ParseCapability(n)
		if err != nil {
			return base, err
		}
		out = out.Without(c)
	}
	return out, nil
}

// IntrospectionConfig tunes catalog queries.
type IntrospectionConfig struct {
	// Concurrency bounds the number of namespaces queried at once (default 4)
	Concurrency int `koanf:"concurrency"`
	// RateLimit caps catalog queries per second across namespaces (0 disables)
	RateLimit float64 `koanf:"rate_limit"`
}
