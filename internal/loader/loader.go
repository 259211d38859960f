package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/leapstack-labs/ddlsync/pkg/dialect"
	"github.com/leapstack-labs/ddlsync/pkg/schema"
)

// Failure is a definition file that could not be turned into a table.
type Failure struct {
	File string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.File, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Result holds every table loaded from a directory.
// A failing file never prevents the other files from loading.
type Result struct {
	Tables   []*core.Table
	Files    map[string]string // table full name -> source file
	Failures []Failure
}

// Err joins all failures, or returns nil.
func (r *Result) Err() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Find returns the table with the given full name.
func (r *Result) Find(fullName string) (*core.Table, bool) {
	for _, t := range r.Tables {
		if t.FullName() == fullName {
			return t, true
		}
	}
	return nil, false
}

// Loader loads table definitions for one dialect.
type Loader struct {
	dialect *dialect.Dialect
	logger  *slog.Logger
}

// New creates a Loader. Tables are checked against d at load time.
func New(d *dialect.Dialect, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{dialect: d, logger: logger}
}

// LoadDir loads every *.yaml and *.yml file under dir.
//
// The table name defaults to the file name and the schema to the first
// directory below dir.
func (l *Loader) LoadDir(dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("tables path %s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isDefinitionFile(d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk tables directory: %w", err)
	}
	sort.Strings(files)

	result := &Result{Files: make(map[string]string)}
	for _, path := range files {
		rel, _ := filepath.Rel(dir, path)
		tbl, err := l.LoadFile(path, rel)
		if err != nil {
			l.logger.Debug("table definition rejected", slog.String("file", rel), slog.String("error", err.Error()))
			result.Failures = append(result.Failures, Failure{File: rel, Err: err})
			continue
		}

		name := tbl.FullName()
		if prev, dup := result.Files[name]; dup {
			result.Failures = append(result.Failures, Failure{
				File: rel,
				Err:  fmt.Errorf("table %s is already defined in %s", name, prev),
			})
			continue
		}
		result.Files[name] = rel
		result.Tables = append(result.Tables, tbl)
	}

	l.logger.Debug("loaded table definitions",
		slog.Int("tables", len(result.Tables)),
		slog.Int("failures", len(result.Failures)))
	return result, nil
}

// LoadFile loads a single definition. rel is the path relative to the
// tables directory and drives the name and schema defaults.
func (l *Loader) LoadFile(path, rel string) (*core.Table, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from walking the tables directory
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, err
	}
	def.ApplyDefaults(rel)
	return l.Build(def)
}

// Build validates a definition and checks it against the dialect.
func (l *Loader) Build(def *Definition) (*core.Table, error) {
	cols := make([]core.Column, len(def.Columns))
	for i, c := range def.Columns {
		cols[i] = c.Column()
	}

	var partition string
	var cluster []string
	if def.Properties != nil {
		partition = strings.TrimSpace(def.Properties.Partition)
		cluster = def.Properties.Cluster
	}

	tbl, err := schema.Build(def.Name, cols, partition, cluster,
		schema.WithNamespace(def.Schema),
		schema.WithPostActions(def.PostHook...),
		schema.WithSelect(def.Select),
	)
	if err != nil {
		return nil, err
	}
	if l.dialect != nil {
		if err := dialect.CheckTable(l.dialect, tbl); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// ApplyDefaults fills name and schema from the file location.
func (d *Definition) ApplyDefaults(rel string) {
	rel = filepath.ToSlash(rel)
	if d.Name == "" {
		base := filepath.Base(rel)
		d.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if d.Schema == "" {
		if dir, _, ok := strings.Cut(rel, "/"); ok {
			d.Schema = dir
		}
	}
}

func isDefinitionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
