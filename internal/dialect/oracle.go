package dialect

import "strings"

type OracleDialect struct{}

func (d *OracleDialect) TablesQuery() string {
	return `SELECT t.TABLE_NAME, c.COMMENTS
FROM ALL_TABLES t
LEFT JOIN ALL_TAB_COMMENTS c ON t.OWNER = c.OWNER AND t.TABLE_NAME = c.TABLE_NAME
WHERE t.OWNER = :1
ORDER BY t.TABLE_NAME`
}

func (d *OracleDialect) ColumnsQuery() string {
	return `SELECT t.TABLE_NAME,
       t.COLUMN_NAME,
       CASE
           WHEN t.DATA_TYPE = 'NUMBER' AND t.DATA_PRECISION IS NOT NULL
               THEN t.DATA_TYPE || '(' || t.DATA_PRECISION || ',' || NVL(t.DATA_SCALE, 0) || ')'
           WHEN t.DATA_TYPE IN ('VARCHAR2', 'NVARCHAR2', 'CHAR', 'NCHAR')
               THEN t.DATA_TYPE || '(' || t.CHAR_LENGTH || ')'
           ELSE t.DATA_TYPE
       END,
       t.NULLABLE,
       t.DATA_DEFAULT,
       c.COMMENTS
FROM ALL_TAB_COLUMNS t
LEFT JOIN ALL_COL_COMMENTS c
    ON t.OWNER = c.OWNER AND t.TABLE_NAME = c.TABLE_NAME AND t.COLUMN_NAME = c.COLUMN_NAME
WHERE t.OWNER = :1
ORDER BY t.TABLE_NAME, t.COLUMN_ID`
}

func (d *OracleDialect) PrimaryKeysQuery() string {
	return `SELECT cc.TABLE_NAME, cc.COLUMN_NAME
FROM ALL_CONS_COLUMNS cc
JOIN ALL_CONSTRAINTS uc ON cc.OWNER = uc.OWNER AND cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
WHERE uc.CONSTRAINT_TYPE = 'P' AND cc.OWNER = :1
ORDER BY cc.TABLE_NAME, cc.POSITION`
}

func (d *OracleDialect) LiteralDefault(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "NULL") {
		return "", false
	}
	if looksLikeExpression(trimmed) || strings.EqualFold(trimmed, "SYSDATE") {
		return "", false
	}
	return Unquote(trimmed), true
}

func (d *OracleDialect) SchemaName(input string) string {
	// Oracle owners are uppercase unless quoted at creation time.
	return strings.ToUpper(input)
}
