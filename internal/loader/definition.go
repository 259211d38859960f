// Package loader reads YAML table definition files into validated tables.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/ddlsync/pkg/core"
)

// Definition is one table definition file.
// Unknown fields cause parse errors (use Meta for extensions).
type Definition struct {
	Name        string         `yaml:"name"`
	Schema      string         `yaml:"schema"`
	Description string         `yaml:"description"`
	Columns     []ColumnDef    `yaml:"columns"`
	Properties  *PropertiesDef `yaml:"properties"`
	PostHook    []string       `yaml:"post_hook"`
	Select      string         `yaml:"select"`
	Meta        map[string]any `yaml:"meta"`
}

// PropertiesDef holds the physical layout of a table.
type PropertiesDef struct {
	Partition string   `yaml:"partition"`
	Cluster   []string `yaml:"cluster"`
}

// ColumnDef is a column declared either as a bare name or as a mapping
// with name and type.
type ColumnDef struct {
	Name string
	Type string
	Line int
}

var columnFields = map[string]bool{"name": true, "type": true}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ColumnDef) UnmarshalYAML(node *yaml.Node) error {
	c.Line = node.Line
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&c.Name)
	case yaml.MappingNode:
		for i := 0; i < len(node.Content); i += 2 {
			key := node.Content[i]
			if !columnFields[key.Value] {
				return &UnknownFieldError{Field: "columns." + key.Value, Line: key.Line}
			}
		}
		var raw struct {
			Name string `yaml:"name"`
			Type string `yaml:"type"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		c.Name, c.Type = raw.Name, raw.Type
		return nil
	default:
		return &ParseError{Line: node.Line, Message: "column must be a name or a mapping with name and type"}
	}
}

// Column converts the declaration to a core column. A type naming a
// logical kind becomes that kind; anything else is kept as a raw SQL type.
func (c ColumnDef) Column() core.Column {
	col := core.Column{Name: strings.TrimSpace(c.Name)}
	typ := strings.TrimSpace(c.Type)
	if typ == "" {
		return col
	}
	if kind, ok := core.ParseColumnKind(typ); ok {
		col.Kind = kind
	} else {
		col.Type = typ
	}
	return col
}

// ParseDefinition decodes a definition with strict field validation.
func ParseDefinition(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Message: "empty definition"}
		}
		var unknown *UnknownFieldError
		if errors.As(err, &unknown) {
			return nil, unknown
		}
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			return nil, parseErr
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			if unknown := unknownFieldFromTypeError(typeErr); unknown != nil {
				return nil, unknown
			}
		}
		return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	return &def, nil
}

// knownFieldsPattern matches the strict-mode error reported by yaml.v3.
var knownFieldsPattern = regexp.MustCompile(`^line (\d+): field (\S+) not found in type`)

func unknownFieldFromTypeError(err *yaml.TypeError) *UnknownFieldError {
	for _, msg := range err.Errors {
		if m := knownFieldsPattern.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return &UnknownFieldError{Field: m[2], Line: line}
		}
	}
	return nil
}

// ParseError represents a definition parsing error.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		if e.Line > 0 {
			return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
		}
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// UnknownFieldError represents an error for unknown definition fields.
type UnknownFieldError struct {
	File  string
	Field string
	Line  int
}

func (e *UnknownFieldError) Error() string {
	msg := fmt.Sprintf("unknown field %q in table definition, use \"meta\" for custom fields", e.Field)
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}
