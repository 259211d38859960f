package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/ddlsync/pkg/core"
)

// configFileNames lists the recognised project file names in priority order.
var configFileNames = []string{"ddlsync.yaml", "ddlsync.yml"}

// maxUpwardSearchLevels limits how far up the directory tree FindProjectRoot looks.
const maxUpwardSearchLevels = 10

// LoadFromDir loads the project configuration from ddlsync.yaml in dir.
// A directory without a config file yields the defaults.
func LoadFromDir(dir string) (*core.ProjectConfig, error) {
	cfg := &core.ProjectConfig{}

	if path := FindConfigFile(dir); path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		if err := k.Unmarshal("", cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	ApplyDefaults(cfg)
	if !filepath.IsAbs(cfg.TablesDir) {
		cfg.TablesDir = filepath.Join(dir, cfg.TablesDir)
	}
	return cfg, nil
}

// FindConfigFile returns the config file in dir, or "" when there is none.
func FindConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindProjectRoot walks up from startDir looking for a ddlsync config file.
// Returns "" if none is found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for range maxUpwardSearchLevels {
		if FindConfigFile(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
