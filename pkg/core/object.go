package core

import (
	"slices"
	"sort"
	"strings"
)

// ObjectKind classifies an existing catalog object.
type ObjectKind int

// Object kinds. ObjectUnknown covers both "not in the catalog" and
// "not introspected"; callers treat it as "does not exist".
const (
	ObjectUnknown ObjectKind = iota
	ObjectTable
	ObjectView
)

// String returns the lowercase name of the kind.
func (k ObjectKind) String() string {
	switch k {
	case ObjectTable:
		return "table"
	case ObjectView:
		return "view"
	default:
		return "unknown"
	}
}

// ParseObjectKind maps catalog table_type values ("BASE TABLE", "VIEW", ...)
// to an ObjectKind.
func ParseObjectKind(s string) ObjectKind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BASE TABLE", "TABLE", "CLONE", "SNAPSHOT":
		return ObjectTable
	case "VIEW", "MATERIALIZED VIEW":
		return ObjectView
	default:
		return ObjectUnknown
	}
}

// ObjectRef names a catalog object by up to three parts.
type ObjectRef struct {
	Catalog   string
	Namespace string
	Name      string
}

// ParseObjectRef splits a dotted identifier. "a" is a bare name, "a.b" is
// namespace.name and anything longer carries a catalog prefix.
func ParseObjectRef(s string) ObjectRef {
	parts := strings.Split(s, ".")
	switch len(parts) {
	case 1:
		return ObjectRef{Name: parts[0]}
	case 2:
		return ObjectRef{Namespace: parts[0], Name: parts[1]}
	default:
		n := len(parts)
		return ObjectRef{
			Catalog:   strings.Join(parts[:n-2], "."),
			Namespace: parts[n-2],
			Name:      parts[n-1],
		}
	}
}

// String returns the dotted form of the reference.
func (r ObjectRef) String() string {
	if r.Catalog != "" {
		return r.Catalog + "." + Qualify(r.Name, r.Namespace)
	}
	return Qualify(r.Name, r.Namespace)
}

// ObjectState is the introspected state of one catalog object.
type ObjectState struct {
	Kind            ObjectKind
	PartitionColumn string
	ClusterColumns  []string
}

// Exists reports whether the catalog returned a table or view.
func (s ObjectState) Exists() bool {
	return s.Kind != ObjectUnknown
}

// CatalogColumn is one column row returned by a catalog query.
type CatalogColumn struct {
	Name           string
	IsPartition    bool
	ClusterOrdinal *int // nil when the column is not clustered
}

// CatalogObject is one object returned by a catalog query.
type CatalogObject struct {
	Name    string
	Kind    ObjectKind
	Columns []CatalogColumn
}

// =============================================================================
// Snapshot
// =============================================================================

// Snapshot is the immutable current-state map built by one introspection run,
// keyed by namespace exactly as requested, then object name.
type Snapshot struct {
	objects map[string]map[string]ObjectState
}

// NewSnapshot copies objects into a new Snapshot.
func NewSnapshot(objects map[string]map[string]ObjectState) *Snapshot {
	s := &Snapshot{objects: make(map[string]map[string]ObjectState, len(objects))}
	for ns, objs := range objects {
		m := make(map[string]ObjectState, len(objs))
		for name, st := range objs {
			st.ClusterColumns = slices.Clone(st.ClusterColumns)
			m[name] = st
		}
		s.objects[ns] = m
	}
	return s
}

// Lookup returns the state of namespace.name. Objects never requested or
// absent from the catalog yield an ObjectUnknown state.
func (s *Snapshot) Lookup(namespace, name string) ObjectState {
	if s == nil {
		return ObjectState{}
	}
	st, ok := s.objects[namespace][name]
	if !ok {
		return ObjectState{}
	}
	st.ClusterColumns = slices.Clone(st.ClusterColumns)
	return st
}

// LookupRef is Lookup for an ObjectRef.
func (s *Snapshot) LookupRef(ref ObjectRef) ObjectState {
	return s.Lookup(ref.Namespace, ref.Name)
}

// Namespaces returns the namespace keys in sorted order.
func (s *Snapshot) Namespaces() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.objects))
	for ns := range s.objects {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Objects returns the object names recorded for a namespace in sorted order.
func (s *Snapshot) Objects(namespace string) []string {
	if s == nil {
		return nil
	}
	objs := s.objects[namespace]
	out := make([]string, 0, len(objs))
	for name := range objs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of recorded objects across all namespaces.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, objs := range s.objects {
		n += len(objs)
	}
	return n
}
