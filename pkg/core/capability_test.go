package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapability(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Capability
		wantErr bool
	}{
		{name: "canonical", input: "CAN_REPLACE_TABLE", want: CanReplaceTable},
		{name: "spaced legacy", input: "CAN REPLACE VIEW", want: CanReplaceView},
		{name: "lowercase", input: "cannot_change_schema", want: CannotChangeSchema},
		{name: "needs cascade alias", input: "NEEDS CASCADE", want: NeedsCascadeDrop},
		{name: "ddl in select", input: "CANNOT SPECIFY DDL IN SELECT", want: CannotSpecifyDDLInSelect},
		{name: "unknown", input: "CAN_TIME_TRAVEL", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCapability(tt.input)
			if tt.wantErr {
				var capErr *UnknownCapabilityError
				require.ErrorAs(t, err, &capErr)
				assert.Equal(t, tt.input, capErr.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCapabilitySet(t *testing.T) {
	s := NewCapabilitySet(CanReplaceTable, CanReplaceView)

	assert.True(t, s.Has(CanReplaceTable))
	assert.True(t, s.Has(CanReplaceView))
	assert.False(t, s.Has(NeedsCascadeDrop))

	withCascade := s.With(NeedsCascadeDrop)
	assert.True(t, withCascade.Has(NeedsCascadeDrop))
	assert.False(t, s.Has(NeedsCascadeDrop), "With must not mutate the receiver")

	without := withCascade.Without(CanReplaceTable)
	assert.False(t, without.Has(CanReplaceTable))
	assert.Equal(t, []string{"CAN_REPLACE_VIEW", "NEEDS_CASCADE_DROP"}, without.Names())
	assert.Equal(t, "CAN_REPLACE_VIEW,NEEDS_CASCADE_DROP", without.String())
}

func TestCapabilitySet_HasPanicsOnUnknown(t *testing.T) {
	s := NewCapabilitySet()
	assert.Panics(t, func() { s.Has(Capability(99)) })
	assert.Panics(t, func() { s.Has(Capability(-1)) })
}

func TestCapabilitySet_HasNamed(t *testing.T) {
	s := NewCapabilitySet(CannotChangeSchema)

	ok, err := s.HasNamed("CANNOT CHANGE SCHEMA")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.HasNamed("NOT A FEATURE")
	var capErr *UnknownCapabilityError
	assert.ErrorAs(t, err, &capErr)
}

func TestParseCapabilitySet(t *testing.T) {
	s, err := ParseCapabilitySet([]string{"CAN REPLACE TABLE", "SUPPORTS_PARTITION"})
	require.NoError(t, err)
	assert.Equal(t, []Capability{CanReplaceTable, SupportsPartition}, s.List())

	_, err = ParseCapabilitySet([]string{"CAN REPLACE TABLE", "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bogus"`)
}

func TestCapabilityOverrides_Apply(t *testing.T) {
	base := NewCapabilitySet(CanReplaceTable, CanReplaceView)

	got, err := (&CapabilityOverrides{
		Add:    []string{"NEEDS_CASCADE_DROP"},
		Remove: []string{"CAN_REPLACE_TABLE"},
	}).Apply(base)
	require.NoError(t, err)
	assert.Equal(t, NewCapabilitySet(CanReplaceView, NeedsCascadeDrop), got)

	var nilOverrides *CapabilityOverrides
	got, err = nilOverrides.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, base, got)

	_, err = (&CapabilityOverrides{Add: []string{"FLY"}}).Apply(base)
	assert.Error(t, err)
}
