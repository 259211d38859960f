package bigquery

import (
	"fmt"

	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/leapstack-labs/ddlsync/pkg/dialect"
)

func init() {
	dialect.Register(BigQuery)
}

// BigQuery is the BigQuery dialect. Namespaces are datasets.
var BigQuery = dialect.NewDialect("bigquery").
	Identifiers("`", "`", "\\`").
	PlaceholderStyle(core.PlaceholderNamed).
	Capabilities(Capabilities...).
	Types(Types).
	CatalogQuery(catalogQuery).
	Build()

// catalogQuery reads the dataset's INFORMATION_SCHEMA views. The object
// list is bound as a single ARRAY<STRING> parameter.
func catalogQuery(d *dialect.Dialect, namespace string, objects []string) (string, []any) {
	ds := d.QuoteIdentifier(namespace)
	query := fmt.Sprintf(`
		SELECT
			t.table_name AS object_name,
			t.table_type AS object_type,
			c.column_name AS column_name,
			c.is_partitioning_column = 'YES' AS is_partition,
			c.clustering_ordinal_position AS cluster_ordinal
		FROM %[1]s.INFORMATION_SCHEMA.TABLES t
		JOIN %[1]s.INFORMATION_SCHEMA.COLUMNS c
		  ON c.table_name = t.table_name
		WHERE t.table_name IN UNNEST(@p1)
		ORDER BY t.table_name, c.clustering_ordinal_position
	`, ds)
	return query, []any{append([]string(nil), objects...)}
}
