package dialect

import "strings"

type MSSQLDialect struct{}

// MSSQL Driver (go-mssqldb) prefers @p1 named parameters over ?.

func (d *MSSQLDialect) TablesQuery() string {
	// Table comments live in MS_Description extended properties.
	return `SELECT t.TABLE_NAME,
       COALESCE(CAST(ep.value AS NVARCHAR(MAX)), '')
FROM INFORMATION_SCHEMA.TABLES t
LEFT JOIN sys.extended_properties ep
    ON ep.major_id = OBJECT_ID(t.TABLE_SCHEMA + '.' + t.TABLE_NAME)
    AND ep.minor_id = 0
    AND ep.name = 'MS_Description'
WHERE t.TABLE_SCHEMA = @p1 AND t.TABLE_TYPE = 'BASE TABLE'
ORDER BY t.TABLE_NAME`
}

func (d *MSSQLDialect) ColumnsQuery() string {
	return `SELECT c.TABLE_NAME,
       c.COLUMN_NAME,
       CASE
           WHEN c.CHARACTER_MAXIMUM_LENGTH IS NOT NULL AND c.CHARACTER_MAXIMUM_LENGTH > 0
               THEN c.DATA_TYPE + '(' + CAST(c.CHARACTER_MAXIMUM_LENGTH AS VARCHAR(10)) + ')'
           WHEN c.DATA_TYPE IN ('decimal', 'numeric')
               THEN c.DATA_TYPE + '(' + CAST(c.NUMERIC_PRECISION AS VARCHAR(10)) + ',' + CAST(c.NUMERIC_SCALE AS VARCHAR(10)) + ')'
           ELSE c.DATA_TYPE
       END,
       c.IS_NULLABLE,
       c.COLUMN_DEFAULT,
       COALESCE(CAST(ep.value AS NVARCHAR(MAX)), '')
FROM INFORMATION_SCHEMA.COLUMNS c
LEFT JOIN sys.extended_properties ep
    ON ep.major_id = OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME)
    AND ep.minor_id = c.ORDINAL_POSITION
    AND ep.name = 'MS_Description'
WHERE c.TABLE_SCHEMA = @p1
ORDER BY c.TABLE_NAME, c.ORDINAL_POSITION`
}

func (d *MSSQLDialect) PrimaryKeysQuery() string {
	return `SELECT kcu.TABLE_NAME, kcu.COLUMN_NAME
FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY' AND tc.TABLE_SCHEMA = @p1
ORDER BY kcu.TABLE_NAME, kcu.ORDINAL_POSITION`
}

func (d *MSSQLDialect) LiteralDefault(raw string) (string, bool) {
	// SQL Server wraps defaults in parentheses, sometimes twice: ((0)), ('abc').
	trimmed := strings.TrimSpace(raw)
	for strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")") {
		trimmed = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	}
	if trimmed == "" || strings.EqualFold(trimmed, "NULL") {
		return "", false
	}
	if looksLikeExpression(trimmed) || strings.EqualFold(trimmed, "getdate") {
		return "", false
	}
	return Unquote(trimmed), true
}

func (d *MSSQLDialect) SchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}
