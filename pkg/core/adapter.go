package core

import "context"

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database.
	Connect(ctx context.Context, cfg AdapterConfig) error

	// Close closes the database connection.
	Close() error

	// Exec executes a single DDL statement.
	Exec(ctx context.Context, sql string) error

	// QueryCatalog returns kind and partition/cluster columns for the named
	// objects of one namespace. Objects missing from the catalog are omitted.
	QueryCatalog(ctx context.Context, namespace string, objects []string) ([]CatalogObject, error)

	// DefaultNamespace is the namespace used when a request leaves it empty.
	DefaultNamespace() string

	// DialectName returns the name of the dialect this adapter speaks.
	DialectName() string
}

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Project  string
	Username string
	Password string
	Schema   string
	Options  map[string]string
	Params   map[string]any
}
