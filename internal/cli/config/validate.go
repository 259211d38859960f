package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TablesDir == "" {
		return fmt.Errorf("tables_dir is required")
	}
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("invalid output format %q (want auto, text, markdown or json)", c.OutputFormat)
	}
	return nil
}

// ValidateDirectories checks if required directories exist.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.TablesDir); os.IsNotExist(err) {
		return fmt.Errorf("tables directory does not exist: %s\nHint: Create the directory or use --tables-dir to specify a different path", c.TablesDir)
	}
	return nil
}
