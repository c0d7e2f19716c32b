// Package diff computes the structural difference between two schema
// snapshots. Compare is pure: it performs no I/O and never mutates its
// inputs, so concurrent comparisons need no coordination.
package diff

import (
	"schema-sync/internal/schema"
)

// TableDiff partitions table names by how the target deviates from the
// source. Missing: in source only. Extra: in target only. Changed: in both
// with differing structure. All lists are sorted lexicographically.
type TableDiff struct {
	Missing []string
	Extra   []string
	Changed []string
}

// ColumnChange records both sides of a changed column and the sorted names
// of the attributes that differ.
type ColumnChange struct {
	Src     schema.ColumnDef
	Tgt     schema.ColumnDef
	Changes []string
}

// ColumnsDiff partitions the columns of one table present in both
// snapshots. A column lands in exactly one of the three collections.
type ColumnsDiff struct {
	Missing []string
	Extra   []string
	Changed map[string]ColumnChange
}

// Empty reports whether the table has no column-level difference.
func (c ColumnsDiff) Empty() bool {
	return len(c.Missing) == 0 && len(c.Extra) == 0 && len(c.Changed) == 0
}

// Diff is the result of comparing two snapshots. Columns has an entry for a
// table exactly when that table is listed in Tables.Changed.
type Diff struct {
	Tables  TableDiff
	Columns map[string]ColumnsDiff
}

// Empty reports whether the two snapshots were structurally identical.
func (d Diff) Empty() bool {
	return len(d.Tables.Missing) == 0 && len(d.Tables.Extra) == 0 && len(d.Tables.Changed) == 0
}

// TableMissing reports whether the named table exists only in the source.
func (d Diff) TableMissing(name string) bool { return contains(d.Tables.Missing, name) }

// TableExtra reports whether the named table exists only in the target.
func (d Diff) TableExtra(name string) bool { return contains(d.Tables.Extra, name) }

// TableChanged reports whether the named table differs between the sides.
func (d Diff) TableChanged(name string) bool { return contains(d.Tables.Changed, name) }

// TableColumns looks up the column-level diff for a changed table.
func (d Diff) TableColumns(name string) (ColumnsDiff, bool) {
	c, ok := d.Columns[name]
	return c, ok
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Compare computes the structural difference that would bring the target in
// line with the source. It fails only when a snapshot violates the model
// invariants (schema.ErrMalformedSnapshot).
func Compare(src, tgt schema.Snapshot) (Diff, error) {
	if err := src.Validate(); err != nil {
		return Diff{}, err
	}
	if err := tgt.Validate(); err != nil {
		return Diff{}, err
	}

	d := Diff{Columns: map[string]ColumnsDiff{}}

	for _, name := range src.TableNames() {
		if _, ok := tgt.Table(name); !ok {
			d.Tables.Missing = append(d.Tables.Missing, name)
		}
	}
	for _, name := range tgt.TableNames() {
		if _, ok := src.Table(name); !ok {
			d.Tables.Extra = append(d.Tables.Extra, name)
		}
	}

	// Tables present on both sides: compare column sets and attributes.
	for _, name := range src.TableNames() {
		srcTable, _ := src.Table(name)
		tgtTable, ok := tgt.Table(name)
		if !ok {
			continue
		}

		cd := compareTable(srcTable, tgtTable)
		if !cd.Empty() || srcTable.Comment != tgtTable.Comment {
			d.Tables.Changed = append(d.Tables.Changed, name)
			d.Columns[name] = cd
		}
	}

	return d, nil
}

// compareTable builds the column-level diff fragment for a single table
// present in both snapshots.
func compareTable(src, tgt schema.TableDef) ColumnsDiff {
	cd := ColumnsDiff{Changed: map[string]ColumnChange{}}

	for _, col := range src.ColumnNames() {
		srcCol, _ := src.Column(col)
		tgtCol, ok := tgt.Column(col)
		if !ok {
			cd.Missing = append(cd.Missing, col)
			continue
		}
		if changes := srcCol.ChangedAttrs(tgtCol); len(changes) > 0 {
			cd.Changed[col] = ColumnChange{Src: srcCol, Tgt: tgtCol, Changes: changes}
		}
	}

	for _, col := range tgt.ColumnNames() {
		if _, ok := src.Column(col); !ok {
			cd.Extra = append(cd.Extra, col)
		}
	}

	// Missing/Extra come out sorted because ColumnNames sorts.
	return cd
}
