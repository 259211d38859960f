package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// importsOf returns the imports of every non-test Go file in dir, keyed by file.
func importsOf(t *testing.T, dir string) map[string][]string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	fset := token.NewFileSet()
	out := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			out[path] = append(out[path], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return out
}

// TestCoreImportsOnlyStdlib verifies pkg/core depends on nothing but the
// standard library.
func TestCoreImportsOnlyStdlib(t *testing.T) {
	for file, imports := range importsOf(t, ".") {
		for _, imp := range imports {
			if strings.Contains(imp, ".") {
				t.Errorf("%s imports forbidden package: %s", file, imp)
			}
		}
	}
}

// TestPlanningPackagesAreDriverFree verifies the dialect and reconcile
// packages stay pure: no database drivers and no internal packages.
func TestPlanningPackagesAreDriverFree(t *testing.T) {
	dirs := []string{
		"../dialect",
		"../dialects/bigquery",
		"../dialects/duckdb",
		"../dialects/postgres",
		"../reconcile",
		"../schema",
	}
	forbidden := []string{
		"/internal/",
		"database/sql",
		"github.com/jackc/pgx",
		"github.com/marcboeker/go-duckdb",
		"cloud.google.com/go/bigquery",
		"modernc.org/sqlite",
	}

	for _, dir := range dirs {
		for file, imports := range importsOf(t, dir) {
			for _, imp := range imports {
				for _, f := range forbidden {
					if strings.Contains(imp, f) {
						t.Errorf("%s imports %s (planning packages must not touch a database)", file, imp)
					}
				}
			}
		}
	}
}
