package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/ddlsync/pkg/adapters/bigquery"
	_ "github.com/leapstack-labs/ddlsync/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/ddlsync/pkg/adapters/postgres"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ddlsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.StringP("target", "t", "", "")
	fs.String("tables-dir", "", "")
	fs.String("state", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.StringP("output", "o", "", "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "target:\n  type: duckdb\n")
	root := filepath.Dir(path)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, DefaultTablesDir), cfg.TablesDir)
	assert.Equal(t, filepath.Join(root, DefaultStateFile), cfg.StatePath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, "main", cfg.Target.Schema)
	assert.Equal(t, 4, cfg.Introspection.Concurrency)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_EnvironmentTarget(t *testing.T) {
	path := writeConfig(t, `
target:
  type: postgres
  host: localhost
  database: dev
  options:
    sslmode: disable
environments:
  prod:
    tables_dir: prod_tables
    target:
      host: db.internal
      database: warehouse
      options:
        application_name: ddlsync
`)

	cfg, err := LoadConfigWithTarget(path, "prod", nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Target.Type)
	assert.Equal(t, "db.internal", cfg.Target.Host)
	assert.Equal(t, "warehouse", cfg.Target.Database)
	assert.Equal(t, 5432, cfg.Target.Port)
	assert.Equal(t, map[string]string{"sslmode": "disable", "application_name": "ddlsync"}, cfg.Target.Options)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "prod_tables"), cfg.TablesDir)
}

func TestLoadConfig_UnknownEnvironment(t *testing.T) {
	path := writeConfig(t, "target:\n  type: duckdb\nenvironments:\n  dev: {}\n")

	_, err := LoadConfigWithTarget(path, "staging", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown environment "staging"`)
}

func TestLoadConfig_EnvVarsAndFlags(t *testing.T) {
	path := writeConfig(t, "output: text\ntarget:\n  type: duckdb\n")
	t.Setenv("DDLSYNC_OUTPUT", "json")
	t.Setenv("DDLSYNC_VERBOSE", "true")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.Verbose)

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"-o", "markdown", "--state", "custom.db", "--tables-dir", "ddl"}))

	cfg, err = LoadConfig(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)

	wantState, _ := filepath.Abs("custom.db")
	wantTables, _ := filepath.Abs("ddl")
	assert.Equal(t, wantState, cfg.StatePath)
	assert.Equal(t, wantTables, cfg.TablesDir)
}

func TestLoadConfig_InvalidTarget(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "unknown adapter", content: "target:\n  type: oracle\n", wantErr: "unknown adapter type"},
		{name: "bad capability", content: "target:\n  type: duckdb\n  capabilities:\n    add: [CAN_FLY]\n", wantErr: `unknown capability "CAN_FLY"`},
		{name: "bad output", content: "output: html\ntarget:\n  type: duckdb\n", wantErr: "invalid output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandTargetEnvVars(t *testing.T) {
	t.Setenv("DDLSYNC_TEST_PASSWORD", "s3cret")
	t.Setenv("DDLSYNC_TEST_PROJECT", "acme-prod")

	target := &core.TargetConfig{
		Password: "${DDLSYNC_TEST_PASSWORD}",
		Project:  "${DDLSYNC_TEST_PROJECT}",
		User:     "${DDLSYNC_TEST_UNSET_VAR}",
		Host:     "plain",
	}
	expandTargetEnvVars(target)

	assert.Equal(t, "s3cret", target.Password)
	assert.Equal(t, "acme-prod", target.Project)
	assert.Equal(t, "${DDLSYNC_TEST_UNSET_VAR}", target.User)
	assert.Equal(t, "plain", target.Host)
}

func TestMergeTargetConfig(t *testing.T) {
	base := &core.TargetConfig{
		Type:    "bigquery",
		Project: "dev",
		Schema:  "analytics",
		Params:  map[string]any{"location": "US"},
	}
	override := &core.TargetConfig{
		Project:      "prod",
		Params:       map[string]any{"max_bytes_billed": 1000},
		Capabilities: &core.CapabilityOverrides{Remove: []string{"SUPPORTS_CLUSTER"}},
	}

	merged := MergeTargetConfig(base, override)
	assert.Equal(t, "bigquery", merged.Type)
	assert.Equal(t, "prod", merged.Project)
	assert.Equal(t, "analytics", merged.Schema)
	assert.Equal(t, map[string]any{"location": "US", "max_bytes_billed": 1000}, merged.Params)
	assert.Same(t, override.Capabilities, merged.Capabilities)

	// base is untouched
	assert.Equal(t, "dev", base.Project)
	assert.Len(t, base.Params, 1)

	assert.Same(t, base, MergeTargetConfig(base, nil))
	assert.Same(t, override, MergeTargetConfig(nil, override))
}

func TestGetLogger_Fallback(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))
	assert.Nil(t, FromContext(context.Background()))

	cfg := &Config{TablesDir: "x"}
	assert.Same(t, cfg, FromContext(WithConfig(context.Background(), cfg)))
}
