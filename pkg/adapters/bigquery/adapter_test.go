package bigquery

import (
	"context"
	"reflect"
	"testing"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/leapstack-labs/ddlsync/internal/testutil"
	"github.com/leapstack-labs/ddlsync/pkg/adapter"
	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceIterator struct {
	rows []catalogRow
}

func (s *sliceIterator) Next(dst any) error {
	if len(s.rows) == 0 {
		return iterator.Done
	}
	reflect.ValueOf(dst).Elem().Set(reflect.ValueOf(s.rows[0]))
	s.rows = s.rows[1:]
	return nil
}

type fakeRunner struct {
	rows    []catalogRow
	readErr error
	runErr  error

	readSQL    string
	readParams []bigquery.QueryParameter
	ran        []string
	closed     bool
}

func (f *fakeRunner) read(_ context.Context, sql string, params []bigquery.QueryParameter) (rowIterator, error) {
	f.readSQL = sql
	f.readParams = params
	if f.readErr != nil {
		return nil, f.readErr
	}
	return &sliceIterator{rows: f.rows}, nil
}

func (f *fakeRunner) run(_ context.Context, sql string) error {
	f.ran = append(f.ran, sql)
	return f.runErr
}

func (f *fakeRunner) close() error {
	f.closed = true
	return nil
}

func connected(t *testing.T, r *fakeRunner) *Adapter {
	t.Helper()
	a := New(testutil.NewTestLogger(t))
	a.runner = r
	a.cfg = core.AdapterConfig{Project: "proj", Schema: "analytics"}
	return a
}

func TestQueryCatalog(t *testing.T) {
	r := &fakeRunner{rows: []catalogRow{
		{ObjectName: "events", ObjectType: "BASE TABLE", ColumnName: bigquery.NullString{StringVal: "user_id", Valid: true}, ClusterOrdinal: bigquery.NullInt64{Int64: 1, Valid: true}},
		{ObjectName: "events", ObjectType: "BASE TABLE", ColumnName: bigquery.NullString{StringVal: "ts", Valid: true}, IsPartition: bigquery.NullBool{Bool: true, Valid: true}},
		{ObjectName: "daily", ObjectType: "VIEW", ColumnName: bigquery.NullString{StringVal: "day", Valid: true}},
	}}
	a := connected(t, r)

	objs, err := a.QueryCatalog(context.Background(), "analytics", []string{"events", "daily"})
	require.NoError(t, err)

	assert.Contains(t, r.readSQL, "`analytics`.INFORMATION_SCHEMA.COLUMNS")
	require.Len(t, r.readParams, 1)
	assert.Equal(t, "p1", r.readParams[0].Name)
	assert.Equal(t, []string{"events", "daily"}, r.readParams[0].Value)

	require.Len(t, objs, 2)
	assert.Equal(t, core.ObjectTable, objs[0].Kind)
	require.NotNil(t, objs[0].Columns[0].ClusterOrdinal)
	assert.Equal(t, 1, *objs[0].Columns[0].ClusterOrdinal)
	assert.True(t, objs[0].Columns[1].IsPartition)
	assert.Equal(t, core.ObjectView, objs[1].Kind)
}

func TestQueryCatalog_Error(t *testing.T) {
	a := connected(t, &fakeRunner{readErr: assert.AnError})

	_, err := a.QueryCatalog(context.Background(), "analytics", []string{"t"})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestExec(t *testing.T) {
	r := &fakeRunner{}
	a := connected(t, r)

	require.NoError(t, a.Exec(context.Background(), "DROP TABLE IF EXISTS analytics.t"))
	assert.Equal(t, []string{"DROP TABLE IF EXISTS analytics.t"}, r.ran)

	r.runErr = assert.AnError
	err := a.Exec(context.Background(), "CREATE TABLE x")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestNotConnected(t *testing.T) {
	a := New(nil)
	ctx := context.Background()

	assert.Error(t, a.Exec(ctx, "SELECT 1"))
	_, err := a.QueryCatalog(ctx, "ds", []string{"t"})
	assert.Error(t, err)
	assert.NoError(t, a.Close())
}

func TestClose(t *testing.T) {
	r := &fakeRunner{}
	a := connected(t, r)

	require.NoError(t, a.Close())
	assert.True(t, r.closed)
	assert.Nil(t, a.runner)
}

func TestConnect_RequiresProject(t *testing.T) {
	err := New(nil).Connect(context.Background(), core.AdapterConfig{Type: "bigquery"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a project")
}

func TestParseParams(t *testing.T) {
	p, err := parseParams(map[string]any{
		"location":         "EU",
		"credentials_file": "/secrets/sa.json",
		"labels":           map[string]any{"team": "data"},
		"max_bytes_billed": "1000000",
	})
	require.NoError(t, err)
	assert.Equal(t, &Params{
		Location:        "EU",
		CredentialsFile: "/secrets/sa.json",
		Labels:          map[string]string{"team": "data"},
		MaxBytesBilled:  1000000,
	}, p)

	_, err = parseParams(map[string]any{"region": "EU"})
	assert.Error(t, err)
}

func TestRegistered(t *testing.T) {
	reg, ok := adapter.Get("bigquery")
	require.True(t, ok)
	assert.Equal(t, "bigquery", reg.Dialect)
	assert.Equal(t, "analytics", connected(t, &fakeRunner{}).DefaultNamespace())
}
