package postgres

import (
	"context"
	"testing"

	"github.com/leapstack-labs/ddlsync/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   adapter.Config
		expected string
	}{
		{
			name: "basic connection",
			config: adapter.Config{
				Host:     "localhost",
				Port:     5432,
				Database: "testdb",
				Username: "user",
				Password: "pass",
			},
			expected: "host=localhost port=5432 dbname=testdb sslmode=disable user=user password=pass",
		},
		{
			name: "custom sslmode and extra options",
			config: adapter.Config{
				Host:     "prod.example.com",
				Database: "proddb",
				Username: "admin",
				Options:  map[string]string{"sslmode": "require", "application_name": "ddlsync", "connect_timeout": "5"},
			},
			expected: "host=prod.example.com port=5432 dbname=proddb sslmode=require user=admin application_name=ddlsync connect_timeout=5",
		},
		{
			name:     "defaults",
			config:   adapter.Config{Database: "mydb"},
			expected: "host=localhost port=5432 dbname=mydb sslmode=disable",
		},
		{
			name:     "password with spaces is quoted",
			config:   adapter.Config{Database: "db", Password: "a b'c"},
			expected: `host=localhost port=5432 dbname=db sslmode=disable password='a b\'c'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildPostgresDSN(tt.config))
		})
	}
}

func TestAdapter_Defaults(t *testing.T) {
	adp := New(nil)
	assert.Equal(t, "postgres", adp.DialectName())
	assert.Equal(t, "public", adp.DefaultNamespace())

	adp.Cfg.Schema = "staging"
	assert.Equal(t, "staging", adp.DefaultNamespace())
}

func TestAdapter_NotConnected(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)

	assert.Error(t, adp.Exec(ctx, "SELECT 1"))
	_, err := adp.QueryCatalog(ctx, "public", []string{"t"})
	assert.Error(t, err)
	assert.NoError(t, adp.Close())
}

func TestAdapter_Registry(t *testing.T) {
	reg, ok := adapter.Get("postgres")
	require.True(t, ok)
	assert.Equal(t, "postgres", reg.Dialect)
	assert.IsType(t, &Adapter{}, reg.New(nil))
}
