package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// Capability
// =============================================================================

// Capability is a DDL feature a dialect may declare.
type Capability int

// Known capabilities. The set is closed: renderers and the reconciler only
// ever ask about these.
const (
	CanReplaceTable Capability = iota
	CanReplaceView
	CannotChangeSchema
	NeedsCascadeDrop
	CannotSpecifyDDLInSelect
	SupportsPartition
	SupportsCluster

	numCapabilities
)

var capabilityNames = [numCapabilities]string{
	CanReplaceTable:          "CAN_REPLACE_TABLE",
	CanReplaceView:           "CAN_REPLACE_VIEW",
	CannotChangeSchema:       "CANNOT_CHANGE_SCHEMA",
	NeedsCascadeDrop:         "NEEDS_CASCADE_DROP",
	CannotSpecifyDDLInSelect: "CANNOT_SPECIFY_DDL_IN_SELECT",
	SupportsPartition:        "SUPPORTS_PARTITION",
	SupportsCluster:          "SUPPORTS_CLUSTER",
}

func (c Capability) valid() bool {
	return c >= 0 && c < numCapabilities
}

// String returns the canonical name of the capability.
func (c Capability) String() string {
	if !c.valid() {
		return fmt.Sprintf("Capability(%d)", int(c))
	}
	return capabilityNames[c]
}

// ParseCapability converts a capability name to a Capability.
// Names are case-insensitive and may use spaces instead of underscores
// ("CAN REPLACE TABLE"). NEEDS_CASCADE is accepted for NEEDS_CASCADE_DROP.
func ParseCapability(name string) (Capability, error) {
	norm := strings.ToUpper(strings.Join(strings.Fields(name), "_"))
	if norm == "NEEDS_CASCADE" {
		return NeedsCascadeDrop, nil
	}
	for i, n := range capabilityNames {
		if n == norm {
			return Capability(i), nil
		}
	}
	return 0, &UnknownCapabilityError{Name: name}
}

// AllCapabilities returns every known capability in declaration order.
func AllCapabilities() []Capability {
	caps := make([]Capability, numCapabilities)
	for i := range caps {
		caps[i] = Capability(i)
	}
	return caps
}

// =============================================================================
// CapabilitySet
// =============================================================================

// CapabilitySet is an immutable set of capabilities.
// The zero value is the empty set.
type CapabilitySet struct {
	bits uint32
}

// NewCapabilitySet builds a set from the given capabilities.
// It panics on a capability outside the known enumeration.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		s = s.With(c)
	}
	return s
}

// ParseCapabilitySet builds a set from capability names.
// An unknown name fails with *UnknownCapabilityError.
func ParseCapabilitySet(names []string) (CapabilitySet, error) {
	var s CapabilitySet
	for _, n := range names {
		c, err := ParseCapability(n)
		if err != nil {
			return CapabilitySet{}, err
		}
		s = s.With(c)
	}
	return s, nil
}

func mustValid(c Capability) {
	if !c.valid() {
		panic(&UnknownCapabilityError{Name: c.String()})
	}
}

// Has reports whether the capability is in the set.
// Asking about a capability outside the enumeration is a programming error and panics.
func (s CapabilitySet) Has(c Capability) bool {
	mustValid(c)
	return s.bits&(1<<uint(c)) != 0
}

// HasNamed looks a capability up by name.
func (s CapabilitySet) HasNamed(name string) (bool, error) {
	c, err := ParseCapability(name)
	if err != nil {
		return false, err
	}
	return s.Has(c), nil
}

// With returns a copy of the set including c.
func (s CapabilitySet) With(c Capability) CapabilitySet {
	mustValid(c)
	return CapabilitySet{bits: s.bits | 1<<uint(c)}
}

// Without returns a copy of the set excluding c.
func (s CapabilitySet) Without(c Capability) CapabilitySet {
	mustValid(c)
	return CapabilitySet{bits: s.bits &^ (1 << uint(c))}
}

// List returns the capabilities in the set in declaration order.
func (s CapabilitySet) List() []Capability {
	var caps []Capability
	for _, c := range AllCapabilities() {
		if s.Has(c) {
			caps = append(caps, c)
		}
	}
	return caps
}

// Names returns the canonical names of the capabilities in the set.
func (s CapabilitySet) Names() []string {
	caps := s.List()
	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = c.String()
	}
	return names
}

// String renders the set as a comma-separated list.
func (s CapabilitySet) String() string {
	return strings.Join(s.Names(), ",")
}
