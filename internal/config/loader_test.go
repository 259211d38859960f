package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	content := `tables_dir: ddl
target:
  type: bigquery
  project: acme
  schema: analytics
  capabilities:
    remove: [SUPPORTS_CLUSTER]
introspection:
  concurrency: 2
  rate_limit: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ddlsync.yaml"), []byte(content), 0o600))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "ddl"), cfg.TablesDir)
	assert.Equal(t, "bigquery", cfg.Target.Type)
	assert.Equal(t, "acme", cfg.Target.Project)
	assert.Equal(t, "analytics", cfg.Target.Schema)
	assert.Equal(t, []string{"SUPPORTS_CLUSTER"}, cfg.Target.Capabilities.Remove)
	assert.Equal(t, 2, cfg.Introspection.Concurrency)
	assert.InDelta(t, 5.0, cfg.Introspection.RateLimit, 0.001)
}

func TestLoadFromDir_NoConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultTablesDir), cfg.TablesDir)
	assert.Nil(t, cfg.Target)
	assert.Equal(t, DefaultConcurrency, cfg.Introspection.Concurrency)
}

func TestLoadFromDir_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ddlsync.yml"), []byte("target: [unclosed"), 0o600))

	_, err := LoadFromDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "tables", "analytics")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ddlsync.yaml"), []byte("tables_dir: tables\n"), 0o600))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, filepath.Join(root, "ddlsync.yaml"), FindConfigFile(root))
	assert.Empty(t, FindConfigFile(nested))
}
