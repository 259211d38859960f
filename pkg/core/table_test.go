package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualify(t *testing.T) {
	assert.Equal(t, "sales.orders", Qualify("orders", "sales"))
	assert.Equal(t, "orders", Qualify("orders", ""))
}

func TestTable_AllColumnsTyped(t *testing.T) {
	tests := []struct {
		name    string
		columns []Column
		want    bool
	}{
		{name: "no columns", columns: nil, want: false},
		{name: "all raw types", columns: []Column{{Name: "a", Type: "INT64"}, {Name: "b", Type: "STRING"}}, want: true},
		{name: "mixed kind and raw", columns: []Column{{Name: "a", Kind: KindInteger}, {Name: "b", Type: "STRING"}}, want: true},
		{name: "one untyped", columns: []Column{{Name: "a", Type: "INT64"}, {Name: "b"}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := &Table{Name: "t", Columns: tt.columns}
			assert.Equal(t, tt.want, tbl.AllColumnsTyped())
		})
	}
}

func TestParseColumnKind(t *testing.T) {
	tests := []struct {
		input string
		want  ColumnKind
		ok    bool
	}{
		{"string", KindString, true},
		{"INT", KindInteger, true},
		{"datetime", KindTimestamp, true},
		{"dict", KindJSON, true},
		{"uuid", KindUUID, true},
		{"NUMERIC(10,2)", KindUnspecified, false},
		{"", KindUnspecified, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseColumnKind(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllKinds(t *testing.T) {
	kinds := AllKinds()
	assert.Len(t, kinds, 13)
	assert.NotContains(t, kinds, KindUnspecified)
	for _, k := range kinds {
		assert.NotEqual(t, "unknown", k.String())
	}
}
