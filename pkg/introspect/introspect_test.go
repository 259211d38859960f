package introspect

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/leapstack-labs/ddlsync/internal/testutil"
	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	namespace string
	objects   []string
}

type fakeQuerier struct {
	mu      sync.Mutex
	calls   []call
	catalog map[string][]core.CatalogObject
	errs    map[string]error
}

func (f *fakeQuerier) QueryCatalog(_ context.Context, namespace string, objects []string) ([]core.CatalogObject, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{namespace: namespace, objects: objects})
	f.mu.Unlock()

	if err := f.errs[namespace]; err != nil {
		return nil, err
	}
	return f.catalog[namespace], nil
}

func ord(n int) *int { return &n }

func TestIntrospect_GroupsByNamespace(t *testing.T) {
	q := &fakeQuerier{catalog: map[string][]core.CatalogObject{
		"ds1": {
			{Name: "t1", Kind: core.ObjectTable},
			{Name: "t2", Kind: core.ObjectView},
		},
	}}
	in := New(q, "main", Options{}, testutil.NewTestLogger(t))

	snap, err := in.IntrospectNames(context.Background(), "ds1.t1", "ds1.t2", "ds2.t3")
	require.NoError(t, err)

	assert.Len(t, q.calls, 2)
	assert.Equal(t, core.ObjectTable, snap.Lookup("ds1", "t1").Kind)
	assert.Equal(t, core.ObjectView, snap.Lookup("ds1", "t2").Kind)
	assert.Equal(t, core.ObjectUnknown, snap.Lookup("ds2", "t3").Kind)
	assert.Equal(t, []string{"ds1", "ds2"}, snap.Namespaces())
	assert.Equal(t, []string{"t3"}, snap.Objects("ds2"))
}

func TestIntrospect_FoldsLayout(t *testing.T) {
	q := &fakeQuerier{catalog: map[string][]core.CatalogObject{
		"ds": {{
			Name: "t",
			Kind: core.ObjectTable,
			Columns: []core.CatalogColumn{
				{Name: "b", ClusterOrdinal: ord(2)},
				{Name: "ts", IsPartition: true},
				{Name: "a", ClusterOrdinal: ord(1)},
				{Name: "c"},
			},
		}},
	}}
	in := New(q, "", Options{}, nil)

	snap, err := in.Introspect(context.Background(), []core.ObjectRef{{Namespace: "ds", Name: "t"}})
	require.NoError(t, err)

	state := snap.Lookup("ds", "t")
	assert.Equal(t, "ts", state.PartitionColumn)
	assert.Equal(t, []string{"a", "b"}, state.ClusterColumns)
}

func TestIntrospect_EmptyNamespaceUsesDefault(t *testing.T) {
	q := &fakeQuerier{catalog: map[string][]core.CatalogObject{
		"main": {{Name: "t", Kind: core.ObjectTable}},
	}}
	in := New(q, "main", Options{}, nil)

	snap, err := in.IntrospectNames(context.Background(), "t")
	require.NoError(t, err)

	require.Len(t, q.calls, 1)
	assert.Equal(t, "main", q.calls[0].namespace)
	// Keyed by the namespace as requested.
	assert.Equal(t, core.ObjectTable, snap.Lookup("", "t").Kind)
	assert.Equal(t, []string{""}, snap.Namespaces())
}

func TestIntrospect_RejectsCatalogQualifier(t *testing.T) {
	q := &fakeQuerier{}
	in := New(q, "", Options{}, nil)

	_, err := in.IntrospectNames(context.Background(), "ds.t", "proj.ds.t")
	var qualErr *core.UnsupportedQualificationError
	require.ErrorAs(t, err, &qualErr)
	assert.Equal(t, "proj", qualErr.Ref.Catalog)
	assert.Empty(t, q.calls, "no query may run")
}

func TestIntrospect_CatalogError(t *testing.T) {
	boom := errors.New("permission denied")
	q := &fakeQuerier{errs: map[string]error{"ds": boom}}
	in := New(q, "", Options{Concurrency: 1}, nil)

	_, err := in.IntrospectNames(context.Background(), "ds.t")
	require.Error(t, err)

	var catErr *core.CatalogQueryError
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "ds", catErr.Namespace)
	assert.Same(t, boom, errors.Unwrap(catErr))
	assert.ErrorIs(t, err, boom)
}

func TestIntrospect_DeduplicatesRequests(t *testing.T) {
	q := &fakeQuerier{}
	in := New(q, "", Options{}, nil)

	snap, err := in.IntrospectNames(context.Background(), "ds.t", "ds.t", "ds.u")
	require.NoError(t, err)

	require.Len(t, q.calls, 1)
	assert.Equal(t, []string{"t", "u"}, q.calls[0].objects)
	assert.Equal(t, 2, snap.Len())
}

func TestIntrospect_IgnoresUnrequestedObjects(t *testing.T) {
	q := &fakeQuerier{catalog: map[string][]core.CatalogObject{
		"ds": {{Name: "other", Kind: core.ObjectTable}},
	}}
	in := New(q, "", Options{}, nil)

	snap, err := in.IntrospectNames(context.Background(), "ds.t")
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, snap.Objects("ds"))
}

func TestIntrospect_RateLimitHonorsCancellation(t *testing.T) {
	q := &fakeQuerier{}
	in := New(q, "", Options{RateLimit: 0.001}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := in.IntrospectNames(ctx, "a.t", "b.t")
	require.Error(t, err)
}

func TestFold_NoLayout(t *testing.T) {
	state := Fold(core.CatalogObject{Name: "v", Kind: core.ObjectView, Columns: []core.CatalogColumn{{Name: "x"}}})
	assert.Equal(t, core.ObjectState{Kind: core.ObjectView}, state)
}
