package schema_test

import (
	"errors"
	"reflect"
	"testing"

	"schema-sync/internal/schema"
)

func strp(s string) *string { return &s }

func TestChangedAttrs(t *testing.T) {
	base := schema.ColumnDef{Type: "VARCHAR(50)", Nullable: true, Default: strp("x"), Comment: "note"}

	if got := base.ChangedAttrs(base); len(got) != 0 {
		t.Errorf("identical defs changed: %v", got)
	}

	other := schema.ColumnDef{Type: "VARCHAR(60)", Nullable: false, Default: nil, Comment: ""}
	want := []string{"comment", "default", "nullable", "type"}
	if got := base.ChangedAttrs(other); !reflect.DeepEqual(got, want) {
		t.Errorf("ChangedAttrs = %v, want %v", got, want)
	}

	// nil default vs explicit empty string is a real difference
	a := schema.ColumnDef{Type: "TEXT", Default: nil}
	b := schema.ColumnDef{Type: "TEXT", Default: strp("")}
	if got := a.ChangedAttrs(b); !reflect.DeepEqual(got, []string{"default"}) {
		t.Errorf("ChangedAttrs = %v, want [default]", got)
	}
	if a.Equal(b) {
		t.Errorf("nil default must not equal empty-string default")
	}
}

func TestSnapshotValidate(t *testing.T) {
	good := schema.Snapshot{
		"t": {Columns: map[string]schema.ColumnDef{"a": {Type: "INT"}}, ColumnOrder: []string{"a"}},
	}
	if err := good.Validate(); err != nil {
		t.Errorf("valid snapshot rejected: %v", err)
	}

	noColumns := schema.Snapshot{"t": {}}
	if err := noColumns.Validate(); !errors.Is(err, schema.ErrMalformedSnapshot) {
		t.Errorf("nil column map: err = %v", err)
	}

	badOrder := schema.Snapshot{
		"t": {Columns: map[string]schema.ColumnDef{"a": {Type: "INT"}}, ColumnOrder: []string{"a", "ghost"}},
	}
	if err := badOrder.Validate(); !errors.Is(err, schema.ErrMalformedSnapshot) {
		t.Errorf("unknown ordered column: err = %v", err)
	}
}

func TestSnapshotLookups(t *testing.T) {
	s := schema.Snapshot{
		"b": {Columns: map[string]schema.ColumnDef{"x": {Type: "INT"}}},
		"a": {Columns: map[string]schema.ColumnDef{}},
	}

	if !reflect.DeepEqual(s.TableNames(), []string{"a", "b"}) {
		t.Errorf("TableNames = %v", s.TableNames())
	}
	if _, ok := s.Table("a"); !ok {
		t.Errorf("Table(a) not found")
	}
	if _, ok := s.Table("zzz"); ok {
		t.Errorf("Table(zzz) unexpectedly found")
	}

	tab, _ := s.Table("b")
	if _, ok := tab.Column("x"); !ok {
		t.Errorf("Column(x) not found")
	}
	if _, ok := tab.Column("y"); ok {
		t.Errorf("Column(y) unexpectedly found")
	}
}
