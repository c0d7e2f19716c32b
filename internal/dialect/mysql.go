package dialect

import "strings"

type MysqlDialect struct{}

func (d *MysqlDialect) TablesQuery() string {
	return `SELECT TABLE_NAME, TABLE_COMMENT FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MysqlDialect) ColumnsQuery() string {
	// COLUMN_TYPE carries the rendered type including length/precision, e.g. varchar(50).
	return `SELECT TABLE_NAME, COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_DEFAULT, COLUMN_COMMENT FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? ORDER BY TABLE_NAME, ORDINAL_POSITION`
}

func (d *MysqlDialect) PrimaryKeysQuery() string {
	return `SELECT TABLE_NAME, COLUMN_NAME FROM information_schema.KEY_COLUMN_USAGE WHERE TABLE_SCHEMA = ? AND CONSTRAINT_NAME = 'PRIMARY' ORDER BY TABLE_NAME, ORDINAL_POSITION`
}

func (d *MysqlDialect) LiteralDefault(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		// MySQL reports an explicit '' default as an empty string; keep it.
		return "", true
	}
	upper := strings.ToUpper(trimmed)
	if upper == "NULL" || strings.HasPrefix(upper, "CURRENT_TIMESTAMP") {
		return "", false
	}
	if looksLikeExpression(trimmed) {
		return "", false
	}
	return Unquote(trimmed), true
}

func (d *MysqlDialect) SchemaName(input string) string {
	return input
}
