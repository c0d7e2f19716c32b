// Package report flattens a diff into per-side table listings with status
// tags, the shape both the CLI report and the HTTP compare endpoint render.
// Exclusion patterns apply here, at presentation time; the diff itself
// always reflects the full comparison.
package report

import (
	"schema-sync/internal/diff"
	"schema-sync/internal/schema"
)

type Stats struct {
	TableDiff     int `json:"table_diff"`
	ColumnDiff    int `json:"column_diff"`
	MissingTables int `json:"missing_tables"`
	ExtraTables   int `json:"extra_tables"`
}

type ColumnView struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"` // normal, missing, extra, changed
}

type TableView struct {
	Name    string       `json:"name"`
	Status  string       `json:"status"` // "", missing, extra, changed
	Columns []ColumnView `json:"columns"`
}

type Report struct {
	Stats        Stats       `json:"stats"`
	SourceTables []TableView `json:"source_tables"`
	TargetTables []TableView `json:"target_tables"`
}

// Build assembles the comparison view. Tables matching an exclusion pattern
// are hidden from both listings but still counted in Stats, which always
// describe the full diff.
func Build(src, tgt schema.Snapshot, d diff.Diff, excludePatterns []string) Report {
	r := Report{
		Stats: Stats{
			TableDiff:     len(d.Tables.Missing) + len(d.Tables.Changed),
			MissingTables: len(d.Tables.Missing),
			ExtraTables:   len(d.Tables.Extra),
		},
	}
	for _, cd := range d.Columns {
		r.Stats.ColumnDiff += len(cd.Missing) + len(cd.Changed)
	}

	for _, table := range src.TableNames() {
		if schema.ExcludeTable(table, excludePatterns) {
			continue
		}
		def, _ := src.Table(table)

		status := ""
		if d.TableMissing(table) {
			status = "missing"
		} else if d.TableChanged(table) {
			status = "changed"
		}

		view := TableView{Name: table, Status: status}
		cd, hasDiff := d.TableColumns(table)
		for _, col := range def.ColumnOrder {
			colDef, _ := def.Column(col)
			colStatus := "normal"
			if hasDiff {
				if containsName(cd.Missing, col) {
					colStatus = "missing"
				} else if _, ok := cd.Changed[col]; ok {
					colStatus = "changed"
				}
			}
			view.Columns = append(view.Columns, ColumnView{Name: col, Type: colDef.Type, Status: colStatus})
		}
		r.SourceTables = append(r.SourceTables, view)
	}

	for _, table := range tgt.TableNames() {
		if schema.ExcludeTable(table, excludePatterns) {
			continue
		}
		def, _ := tgt.Table(table)

		status := ""
		if d.TableExtra(table) {
			status = "extra"
		}

		view := TableView{Name: table, Status: status}
		cd, hasDiff := d.TableColumns(table)
		for _, col := range def.ColumnOrder {
			colDef, _ := def.Column(col)
			colStatus := "normal"
			if hasDiff && containsName(cd.Extra, col) {
				colStatus = "extra"
			}
			view.Columns = append(view.Columns, ColumnView{Name: col, Type: colDef.Type, Status: colStatus})
		}
		r.TargetTables = append(r.TargetTables, view)
	}

	return r
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
