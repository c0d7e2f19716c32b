package schema

import (
	"database/sql"
	"fmt"

	"schema-sync/internal/dialect"
)

// Capture introspects a live database and builds a Snapshot through the
// dialect's metadata queries. onTable, when non-nil, is invoked once per
// assembled table so callers can drive a progress bar.
func Capture(db *sql.DB, d dialect.Dialect, schemaName string, onTable func(name string)) (Snapshot, error) {
	target := d.SchemaName(schemaName)
	snap := Snapshot{}

	// --- Step 1: Tables ---
	rows, err := db.Query(d.TablesQuery(), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var comment sql.NullString
		if err := rows.Scan(&name, &comment); err != nil {
			return nil, fmt.Errorf("failed to scan table row: %w", err)
		}
		snap[name] = TableDef{
			Columns: map[string]ColumnDef{},
			Comment: comment.String,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	// --- Step 2: Columns ---
	colRows, err := db.Query(d.ColumnsQuery(), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer colRows.Close()

	for colRows.Next() {
		var tName, cName, cType, isNull, rawDefault, comment sql.NullString
		if err := colRows.Scan(&tName, &cName, &cType, &isNull, &rawDefault, &comment); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", tName.String, err)
		}
		if !tName.Valid || !cName.Valid {
			continue // Skip invalid rows
		}

		t, ok := snap.Table(tName.String)
		if !ok {
			// Column of a view or a table filtered out by TablesQuery.
			continue
		}

		col := ColumnDef{
			Type:     cType.String,
			Nullable: isNull.String == "YES" || isNull.String == "Y",
			Comment:  comment.String,
		}
		if rawDefault.Valid {
			if literal, ok := d.LiteralDefault(rawDefault.String); ok {
				col.Default = &literal
			}
		}

		t.Columns[cName.String] = col
		t.ColumnOrder = append(t.ColumnOrder, cName.String)
		snap[tName.String] = t
	}
	if err := colRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}

	// --- Step 3: Primary Keys ---
	pkRows, err := db.Query(d.PrimaryKeysQuery(), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query primary keys: %w", err)
	}
	defer pkRows.Close()

	for pkRows.Next() {
		var tName, cName string
		if err := pkRows.Scan(&tName, &cName); err != nil {
			return nil, fmt.Errorf("failed to scan primary key: %w", err)
		}
		if t, ok := snap.Table(tName); ok {
			t.PrimaryKey = append(t.PrimaryKey, cName)
			snap[tName] = t
		}
	}
	if err := pkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating primary keys: %w", err)
	}

	if onTable != nil {
		for _, name := range snap.TableNames() {
			onTable(name)
		}
	}

	return snap, nil
}
