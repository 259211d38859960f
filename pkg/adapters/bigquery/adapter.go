// Package bigquery provides a BigQuery adapter for ddlsync.
//
// Namespaces are datasets of the configured project. Statements run as
// query jobs; the catalog is read from each dataset's INFORMATION_SCHEMA.
package bigquery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/leapstack-labs/ddlsync/pkg/adapter"
	"github.com/leapstack-labs/ddlsync/pkg/core"
	bqdialect "github.com/leapstack-labs/ddlsync/pkg/dialects/bigquery"
)

// rowIterator is the part of *bigquery.RowIterator the adapter reads.
type rowIterator interface {
	Next(dst any) error
}

// jobRunner executes query jobs.
type jobRunner interface {
	read(ctx context.Context, sql string, params []bigquery.QueryParameter) (rowIterator, error)
	run(ctx context.Context, sql string) error
	close() error
}

// Adapter implements the adapter.Adapter interface for BigQuery.
type Adapter struct {
	runner jobRunner
	cfg    core.AdapterConfig
	logger *slog.Logger
}

// New creates a new BigQuery adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{logger: logger}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return bqdialect.BigQuery.Name
}

// DefaultNamespace returns the configured dataset.
func (a *Adapter) DefaultNamespace() string {
	return a.cfg.Schema
}

// Connect creates the BigQuery client for cfg.Project.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	params, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}
	project := cfg.Project
	if project == "" {
		project = cfg.Database
	}
	if project == "" {
		return fmt.Errorf("bigquery target requires a project")
	}

	var opts []option.ClientOption
	if params.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(params.CredentialsFile))
	}

	a.logger.Debug("connecting to bigquery",
		slog.String("project", project),
		slog.String("location", params.Location))

	client, err := bigquery.NewClient(ctx, project, opts...)
	if err != nil {
		return fmt.Errorf("failed to create bigquery client: %w", err)
	}
	if params.Location != "" {
		client.Location = params.Location
	}

	a.runner = &clientRunner{client: client, params: params, dataset: cfg.Schema}
	a.cfg = cfg
	return nil
}

// Close releases the client.
func (a *Adapter) Close() error {
	if a.runner == nil {
		return nil
	}
	a.logger.Debug("closing bigquery client")
	err := a.runner.close()
	a.runner = nil
	return err
}

// Exec runs a statement as a query job and waits for it.
func (a *Adapter) Exec(ctx context.Context, sql string) error {
	if a.runner == nil {
		return fmt.Errorf("database connection not established")
	}
	a.logger.Debug("executing statement", slog.String("sql", sql))
	if err := a.runner.run(ctx, sql); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// catalogRow mirrors the columns of the dialect's catalog query.
type catalogRow struct {
	ObjectName     string              `bigquery:"object_name"`
	ObjectType     string              `bigquery:"object_type"`
	ColumnName     bigquery.NullString `bigquery:"column_name"`
	IsPartition    bigquery.NullBool   `bigquery:"is_partition"`
	ClusterOrdinal bigquery.NullInt64  `bigquery:"cluster_ordinal"`
}

// QueryCatalog implements adapter.Adapter.
func (a *Adapter) QueryCatalog(ctx context.Context, namespace string, objects []string) ([]core.CatalogObject, error) {
	if a.runner == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	if len(objects) == 0 {
		return nil, nil
	}

	query, args := bqdialect.BigQuery.CatalogQuery(namespace, objects)
	params := make([]bigquery.QueryParameter, len(args))
	for i, arg := range args {
		params[i] = bigquery.QueryParameter{Name: "p" + strconv.Itoa(i+1), Value: arg}
	}

	it, err := a.runner.read(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}

	var rows []adapter.CatalogRow
	for {
		var r catalogRow
		err := it.Next(&r)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}
		row := adapter.CatalogRow{
			Object:      r.ObjectName,
			Type:        r.ObjectType,
			Column:      r.ColumnName.StringVal,
			IsPartition: r.IsPartition.Valid && r.IsPartition.Bool,
		}
		if r.ClusterOrdinal.Valid {
			n := int(r.ClusterOrdinal.Int64)
			row.ClusterOrdinal = &n
		}
		rows = append(rows, row)
	}
	return adapter.GroupCatalogRows(rows), nil
}

// clientRunner runs jobs through a *bigquery.Client.
type clientRunner struct {
	client  *bigquery.Client
	params  *Params
	dataset string
}

func (r *clientRunner) query(sql string) *bigquery.Query {
	q := r.client.Query(sql)
	q.Labels = r.params.Labels
	if r.dataset != "" {
		q.DefaultProjectID = r.client.Project()
		q.DefaultDatasetID = r.dataset
	}
	return q
}

func (r *clientRunner) read(ctx context.Context, sql string, params []bigquery.QueryParameter) (rowIterator, error) {
	q := r.query(sql)
	q.Parameters = params
	if r.params.MaxBytesBilled > 0 {
		q.MaxBytesBilled = r.params.MaxBytesBilled
	}
	it, err := q.Read(ctx)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *clientRunner) run(ctx context.Context, sql string) error {
	job, err := r.query(sql).Run(ctx)
	if err != nil {
		return err
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return err
	}
	return status.Err()
}

func (r *clientRunner) close() error {
	return r.client.Close()
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
