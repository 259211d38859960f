package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseObjectRef(t *testing.T) {
	tests := []struct {
		input string
		want  ObjectRef
	}{
		{input: "orders", want: ObjectRef{Name: "orders"}},
		{input: "sales.orders", want: ObjectRef{Namespace: "sales", Name: "orders"}},
		{input: "proj.sales.orders", want: ObjectRef{Catalog: "proj", Namespace: "sales", Name: "orders"}},
		{input: "a.b.c.d", want: ObjectRef{Catalog: "a.b", Namespace: "c", Name: "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref := ParseObjectRef(tt.input)
			assert.Equal(t, tt.want, ref)
			assert.Equal(t, tt.input, ref.String())
		})
	}
}

func TestParseObjectKind(t *testing.T) {
	assert.Equal(t, ObjectTable, ParseObjectKind("BASE TABLE"))
	assert.Equal(t, ObjectView, ParseObjectKind("VIEW"))
	assert.Equal(t, ObjectView, ParseObjectKind("materialized view"))
	assert.Equal(t, ObjectUnknown, ParseObjectKind("EXTERNAL"))
	assert.Equal(t, ObjectUnknown, ParseObjectKind(""))
}

func TestSnapshot_Lookup(t *testing.T) {
	src := map[string]map[string]ObjectState{
		"sales": {
			"orders": {Kind: ObjectTable, PartitionColumn: "ts", ClusterColumns: []string{"id"}},
			"gone":   {},
		},
		"": {
			"events": {Kind: ObjectView},
		},
	}
	snap := NewSnapshot(src)

	// Mutating the source after construction must not leak into the snapshot.
	src["sales"]["orders"].ClusterColumns[0] = "mutated"

	orders := snap.Lookup("sales", "orders")
	assert.Equal(t, ObjectTable, orders.Kind)
	assert.Equal(t, "ts", orders.PartitionColumn)
	assert.Equal(t, []string{"id"}, orders.ClusterColumns)

	// Mutating a looked-up value must not leak back either.
	orders.ClusterColumns[0] = "again"
	assert.Equal(t, []string{"id"}, snap.Lookup("sales", "orders").ClusterColumns)

	assert.False(t, snap.Lookup("sales", "gone").Exists())
	assert.False(t, snap.Lookup("sales", "never_requested").Exists())
	assert.False(t, snap.Lookup("other", "x").Exists())
	assert.Equal(t, ObjectView, snap.LookupRef(ObjectRef{Name: "events"}).Kind)

	assert.Equal(t, []string{"", "sales"}, snap.Namespaces())
	assert.Equal(t, []string{"gone", "orders"}, snap.Objects("sales"))
	assert.Equal(t, 3, snap.Len())
}

func TestSnapshot_Nil(t *testing.T) {
	var snap *Snapshot
	assert.Equal(t, ObjectState{}, snap.Lookup("a", "b"))
	assert.Empty(t, snap.Namespaces())
	assert.Zero(t, snap.Len())
}
