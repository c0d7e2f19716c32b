package schema

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedSnapshot reports a snapshot that violates the structural
// invariants (nil column map, order entry naming an unknown column).
var ErrMalformedSnapshot = errors.New("malformed schema snapshot")

// ColumnDef holds the structural facts of a single column. Default is nil
// when the column has no default; an empty-string default is a real value
// and compares unequal to nil.
type ColumnDef struct {
	Type     string
	Nullable bool
	Default  *string
	Comment  string
}

// Equal compares two column definitions field-wise.
func (c ColumnDef) Equal(o ColumnDef) bool {
	return len(c.ChangedAttrs(o)) == 0
}

// ChangedAttrs returns the sorted names of attributes that differ between
// the two definitions: "comment", "default", "nullable", "type".
func (c ColumnDef) ChangedAttrs(o ColumnDef) []string {
	var changed []string
	if c.Type != o.Type {
		changed = append(changed, "type")
	}
	if c.Nullable != o.Nullable {
		changed = append(changed, "nullable")
	}
	if !defaultsEqual(c.Default, o.Default) {
		changed = append(changed, "default")
	}
	if c.Comment != o.Comment {
		changed = append(changed, "comment")
	}
	sort.Strings(changed)
	return changed
}

func defaultsEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// TableDef describes one table. Columns is keyed by column name;
// ColumnOrder preserves the introspection order for rendering.
// PrimaryKey lists key columns in their defined order.
type TableDef struct {
	Columns     map[string]ColumnDef
	ColumnOrder []string
	PrimaryKey  []string
	Comment     string
}

// Column looks up a column definition by name.
func (t TableDef) Column(name string) (ColumnDef, bool) {
	c, ok := t.Columns[name]
	return c, ok
}

// ColumnNames returns the column names sorted lexicographically.
func (t TableDef) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for name := range t.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot is a point-in-time structural description of a database:
// table name -> table definition. Table names are unique by construction.
type Snapshot map[string]TableDef

// Table looks up a table definition by name.
func (s Snapshot) Table(name string) (TableDef, bool) {
	t, ok := s[name]
	return t, ok
}

// TableNames returns the table names sorted lexicographically.
func (s Snapshot) TableNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the snapshot invariants. A table must carry a column map
// (possibly empty), and every ColumnOrder entry must name a known column.
func (s Snapshot) Validate() error {
	for name, t := range s {
		if t.Columns == nil {
			return fmt.Errorf("%w: table %s has no column map", ErrMalformedSnapshot, name)
		}
		for _, col := range t.ColumnOrder {
			if _, ok := t.Columns[col]; !ok {
				return fmt.Errorf("%w: table %s orders unknown column %s", ErrMalformedSnapshot, name, col)
			}
		}
	}
	return nil
}
