package dialect

// Dialect abstracts database-specific schema introspection.
//
// The three query methods return SQL with a single bind parameter: the schema
// (or owner) name, in the placeholder style the driver expects. Row shapes:
//
//	TablesQuery:      table_name, table_comment
//	ColumnsQuery:     table_name, column_name, column_type, is_nullable,
//	                  column_default, column_comment (ordinal order)
//	PrimaryKeysQuery: table_name, column_name (key position order)
type Dialect interface {
	TablesQuery() string
	ColumnsQuery() string
	PrimaryKeysQuery() string

	// LiteralDefault turns a raw column default into a plain literal.
	// It reports false when the default is an expression or callable
	// (nextval, CURRENT_TIMESTAMP, ...) and must be treated as absent.
	LiteralDefault(raw string) (string, bool)

	// SchemaName resolves the effective schema to introspect.
	SchemaName(input string) string
}
