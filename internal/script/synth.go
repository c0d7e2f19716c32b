// Package script renders a structural diff into an executable DDL script.
// Destructive operations (dropping extra tables or columns) are only ever
// emitted as commented advisories, never as executable statements.
package script

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"schema-sync/internal/diff"
	"schema-sync/internal/schema"
)

// Selection is the caller-chosen subset of tables and columns to render.
// A table with no Columns entry contributes no column clauses; selection is
// a filter, not an assertion, so unknown names simply produce nothing.
type Selection struct {
	Tables  []string
	Columns map[string][]string
}

// ColumnSelected reports whether a column of a table is selected.
func (s Selection) ColumnSelected(table, column string) bool {
	for _, c := range s.Columns[table] {
		if c == column {
			return true
		}
	}
	return false
}

// AllColumns returns a selection over the given tables covering every
// source column of each.
func AllColumns(src schema.Snapshot, tables []string) Selection {
	sel := Selection{Tables: tables, Columns: map[string][]string{}}
	for _, table := range tables {
		if t, ok := src.Table(table); ok {
			sel.Columns[table] = append([]string{}, t.ColumnOrder...)
		}
	}
	return sel
}

// Build renders the forward-migration script for the selected tables.
// Output is byte-identical for fixed inputs and a fixed clock: tables render
// in selection order, columns in source snapshot order.
func Build(src, tgt schema.Snapshot, d diff.Diff, sel Selection, connID string, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "-- schema sync script: %s\n", connID)
	fmt.Fprintf(&b, "-- generated at: %s\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("-- mode: structure only\n\n")
	fmt.Fprintf(&b, "-- %d table(s) selected for synchronization\n", len(sel.Tables))

	for _, table := range sel.Tables {
		switch {
		case d.TableMissing(table):
			srcTable, ok := src.Table(table)
			if !ok {
				continue
			}
			writeCreateTable(&b, table, srcTable, sel)
		case d.TableChanged(table):
			cd, ok := d.TableColumns(table)
			if !ok {
				continue
			}
			srcTable, ok := src.Table(table)
			if !ok {
				continue
			}
			writeAlterTable(&b, table, srcTable, cd, sel)
		}
	}

	writeExtraTables(&b, d, sel)

	b.WriteString("\n-- end of sync script --\n")
	return b.String()
}

func writeCreateTable(b *strings.Builder, table string, def schema.TableDef, sel Selection) {
	fmt.Fprintf(b, "\n-- create missing table: %s\n", table)
	fmt.Fprintf(b, "CREATE TABLE %s (\n", table)

	var clauses []string
	for _, col := range def.ColumnOrder {
		if !sel.ColumnSelected(table, col) {
			continue
		}
		colDef, _ := def.Column(col)
		clauses = append(clauses, "    "+columnClause(col, colDef))
	}
	// The key clause follows table selection, not column selection.
	if len(def.PrimaryKey) > 0 {
		clauses = append(clauses, fmt.Sprintf("    PRIMARY KEY (%s)", strings.Join(def.PrimaryKey, ", ")))
	}
	b.WriteString(strings.Join(clauses, ",\n"))
	b.WriteString("\n);\n")
}

func writeAlterTable(b *strings.Builder, table string, def schema.TableDef, cd diff.ColumnsDiff, sel Selection) {
	fmt.Fprintf(b, "\n-- sync table structure: %s\n", table)

	// Both passes walk the source ColumnOrder so statements come out in
	// snapshot order, not in the diff's sorted order.
	for _, col := range def.ColumnOrder {
		if !nameListed(cd.Missing, col) || !sel.ColumnSelected(table, col) {
			continue
		}
		colDef, _ := def.Column(col)
		fmt.Fprintf(b, "ALTER TABLE %s ADD COLUMN %s;\n", table, columnClause(col, colDef))
	}

	for _, col := range def.ColumnOrder {
		change, ok := cd.Changed[col]
		if !ok || !sel.ColumnSelected(table, col) {
			continue
		}
		// Always render the source side; the target side is report-only.
		fmt.Fprintf(b, "ALTER TABLE %s MODIFY COLUMN %s;\n", table, columnClause(col, change.Src))
	}

	for _, col := range cd.Extra {
		fmt.Fprintf(b, "-- ALTER TABLE %s DROP COLUMN %s;  -- caution: column exists only in target\n", table, col)
	}
}

func nameListed(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func writeExtraTables(b *strings.Builder, d diff.Diff, sel Selection) {
	var extra []string
	for _, table := range sel.Tables {
		if d.TableExtra(table) {
			extra = append(extra, table)
		}
	}
	if len(extra) == 0 {
		return
	}

	b.WriteString("\n-- tables present only in target (absent from source)\n")
	for _, table := range extra {
		fmt.Fprintf(b, "-- DROP TABLE %s;  -- caution: table exists only in target\n", table)
	}
}

// columnClause renders "name type [NOT NULL] [DEFAULT literal]".
func columnClause(name string, def schema.ColumnDef) string {
	clause := fmt.Sprintf("%s %s", name, def.Type)
	if !def.Nullable {
		clause += " NOT NULL"
	}
	if def.Default != nil {
		clause += " DEFAULT " + quoteDefault(*def.Default)
	}
	return clause
}

// quoteDefault wraps a bare string default in single quotes. Values already
// quoted, and values that read as a number, boolean or NULL, pass through
// unchanged. This is a textual heuristic, not a type-aware quoting engine.
func quoteDefault(val string) string {
	if len(val) >= 2 && strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
		return val
	}
	if _, err := strconv.ParseFloat(val, 64); err == nil {
		return val
	}
	switch strings.ToUpper(val) {
	case "TRUE", "FALSE", "NULL":
		return val
	}
	return "'" + strings.ReplaceAll(val, "'", "''") + "'"
}
