package core

import "strings"

// ColumnKind is a logical column type. Each dialect maps every kind to the
// SQL type it renders.
type ColumnKind int

// Logical column kinds.
const (
	KindUnspecified ColumnKind = iota
	KindString
	KindInteger
	KindFloat
	KindNumeric
	KindTimestamp
	KindBytes
	KindBoolean
	KindDate
	KindTime
	KindInterval
	KindArray
	KindJSON
	KindUUID
)

var kindNames = [...]string{
	KindUnspecified: "",
	KindString:      "string",
	KindInteger:     "integer",
	KindFloat:       "float",
	KindNumeric:     "numeric",
	KindTimestamp:   "timestamp",
	KindBytes:       "bytes",
	KindBoolean:     "boolean",
	KindDate:        "date",
	KindTime:        "time",
	KindInterval:    "interval",
	KindArray:       "array",
	KindJSON:        "json",
	KindUUID:        "uuid",
}

var kindAliases = map[string]ColumnKind{
	"str":      KindString,
	"text":     KindString,
	"int":      KindInteger,
	"bool":     KindBoolean,
	"decimal":  KindNumeric,
	"datetime": KindTimestamp,
	"binary":   KindBytes,
	"list":     KindArray,
	"dict":     KindJSON,
}

// String returns the canonical name of the kind.
func (k ColumnKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseColumnKind converts a logical type name to a ColumnKind.
// Returns KindUnspecified and false when the name is not a logical kind.
func ParseColumnKind(s string) (ColumnKind, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return KindUnspecified, false
	}
	for i, n := range kindNames {
		if n == name {
			return ColumnKind(i), true
		}
	}
	if k, ok := kindAliases[name]; ok {
		return k, true
	}
	return KindUnspecified, false
}

// AllKinds returns every concrete column kind.
func AllKinds() []ColumnKind {
	kinds := make([]ColumnKind, 0, len(kindNames)-1)
	for i := 1; i < len(kindNames); i++ {
		kinds = append(kinds, ColumnKind(i))
	}
	return kinds
}
