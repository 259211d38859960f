// Package core defines the shared language of the ddlsync system.
//
// This package contains:
//   - The desired-state model (Table, Column, ColumnKind)
//   - The introspected-state model (ObjectKind, ObjectState, Snapshot)
//   - Dialect capabilities (Capability, CapabilitySet)
//   - Reconciliation output (Plan)
//   - Service interfaces (Adapter) and configuration types (TargetConfig)
//   - The error types shared by every layer
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
