package dialect

import "strings"

type PostgresDialect struct{}

func (d *PostgresDialect) TablesQuery() string {
	// obj_description fetches the table comment; empty string when unset.
	return `SELECT t.table_name,
       COALESCE(obj_description(format('%I.%I', t.table_schema, t.table_name)::regclass), '')
FROM information_schema.tables t
WHERE t.table_schema = $1 AND t.table_type = 'BASE TABLE'
ORDER BY t.table_name`
}

func (d *PostgresDialect) ColumnsQuery() string {
	// The rendered type folds character length and numeric precision back in
	// so "character varying" becomes "character varying(50)" etc.
	return `SELECT c.table_name,
       c.column_name,
       CASE
           WHEN c.character_maximum_length IS NOT NULL THEN c.data_type || '(' || c.character_maximum_length || ')'
           WHEN c.data_type = 'numeric' AND c.numeric_precision IS NOT NULL THEN c.data_type || '(' || c.numeric_precision || ',' || c.numeric_scale || ')'
           ELSE c.data_type
       END,
       c.is_nullable,
       c.column_default,
       COALESCE(col_description(format('%I.%I', c.table_schema, c.table_name)::regclass, c.ordinal_position), '')
FROM information_schema.columns c
WHERE c.table_schema = $1
ORDER BY c.table_name, c.ordinal_position`
}

func (d *PostgresDialect) PrimaryKeysQuery() string {
	return `SELECT kcu.table_name, kcu.column_name
FROM information_schema.key_column_usage kcu
JOIN information_schema.table_constraints tc ON kcu.constraint_name = tc.constraint_name
WHERE kcu.table_schema = $1 AND tc.constraint_type = 'PRIMARY KEY'
ORDER BY kcu.table_name, kcu.ordinal_position`
}

func (d *PostgresDialect) LiteralDefault(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	// Postgres appends a cast to most literal defaults: 'abc'::character varying
	if idx := strings.Index(trimmed, "::"); idx >= 0 {
		trimmed = strings.TrimSpace(trimmed[:idx])
	}
	if trimmed == "" || strings.EqualFold(trimmed, "NULL") {
		return "", false
	}
	// nextval('seq'), now(), CURRENT_TIMESTAMP and friends are not literals.
	if looksLikeExpression(trimmed) || strings.EqualFold(trimmed, "CURRENT_TIMESTAMP") {
		return "", false
	}
	return Unquote(trimmed), true
}

func (d *PostgresDialect) SchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
