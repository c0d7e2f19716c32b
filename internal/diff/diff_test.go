package diff_test

import (
	"errors"
	"reflect"
	"testing"

	"schema-sync/internal/diff"
	"schema-sync/internal/schema"
)

func strp(s string) *string { return &s }

func ordersSnapshot() schema.Snapshot {
	return schema.Snapshot{
		"orders": {
			Columns: map[string]schema.ColumnDef{
				"id":    {Type: "INTEGER", Nullable: false},
				"total": {Type: "DECIMAL", Nullable: true, Default: strp("0")},
			},
			ColumnOrder: []string{"id", "total"},
			PrimaryKey:  []string{"id"},
		},
	}
}

func TestCompareSelfDiffIsEmpty(t *testing.T) {
	s := ordersSnapshot()
	d, err := diff.Compare(s, s)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !d.Empty() {
		t.Errorf("self-diff not empty: %+v", d.Tables)
	}
	if len(d.Columns) != 0 {
		t.Errorf("self-diff has column entries: %v", d.Columns)
	}
}

func TestCompareMissingAndExtraTables(t *testing.T) {
	src := ordersSnapshot()
	tgt := schema.Snapshot{
		"temp_cache": {Columns: map[string]schema.ColumnDef{"k": {Type: "TEXT", Nullable: true}}, ColumnOrder: []string{"k"}},
	}

	d, err := diff.Compare(src, tgt)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !reflect.DeepEqual(d.Tables.Missing, []string{"orders"}) {
		t.Errorf("Missing = %v, want [orders]", d.Tables.Missing)
	}
	if !reflect.DeepEqual(d.Tables.Extra, []string{"temp_cache"}) {
		t.Errorf("Extra = %v, want [temp_cache]", d.Tables.Extra)
	}
	if len(d.Tables.Changed) != 0 {
		t.Errorf("Changed = %v, want empty", d.Tables.Changed)
	}
	// Missing/extra tables never get a columns entry.
	if len(d.Columns) != 0 {
		t.Errorf("Columns = %v, want empty", d.Columns)
	}
}

func TestCompareEmptySourceYieldsOnlyExtra(t *testing.T) {
	d, err := diff.Compare(schema.Snapshot{}, ordersSnapshot())
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if len(d.Tables.Extra) != 1 || len(d.Tables.Missing) != 0 || len(d.Tables.Changed) != 0 {
		t.Errorf("unexpected diff: %+v", d.Tables)
	}
}

func TestCompareColumnChanges(t *testing.T) {
	src := schema.Snapshot{
		"items": {
			Columns: map[string]schema.ColumnDef{
				"id":    {Type: "INTEGER"},
				"price": {Type: "NUMERIC(10,2)", Nullable: false},
				"sku":   {Type: "VARCHAR(20)"},
			},
			ColumnOrder: []string{"id", "price", "sku"},
		},
	}
	tgt := schema.Snapshot{
		"items": {
			Columns: map[string]schema.ColumnDef{
				"id":     {Type: "INTEGER"},
				"price":  {Type: "FLOAT", Nullable: true},
				"legacy": {Type: "TEXT", Nullable: true},
			},
			ColumnOrder: []string{"id", "price", "legacy"},
		},
	}

	d, err := diff.Compare(src, tgt)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !d.TableChanged("items") {
		t.Fatalf("items not reported as changed")
	}
	cd, ok := d.TableColumns("items")
	if !ok {
		t.Fatalf("no columns entry for items")
	}

	if !reflect.DeepEqual(cd.Missing, []string{"sku"}) {
		t.Errorf("Missing = %v, want [sku]", cd.Missing)
	}
	if !reflect.DeepEqual(cd.Extra, []string{"legacy"}) {
		t.Errorf("Extra = %v, want [legacy]", cd.Extra)
	}

	change, ok := cd.Changed["price"]
	if !ok {
		t.Fatalf("price not in Changed: %v", cd.Changed)
	}
	if !reflect.DeepEqual(change.Changes, []string{"nullable", "type"}) {
		t.Errorf("Changes = %v, want [nullable type]", change.Changes)
	}
	if change.Src.Type != "NUMERIC(10,2)" || change.Tgt.Type != "FLOAT" {
		t.Errorf("wrong sides attached: src=%q tgt=%q", change.Src.Type, change.Tgt.Type)
	}

	// Partition property: every column lands in exactly one bucket.
	seen := map[string]int{}
	for _, c := range cd.Missing {
		seen[c]++
	}
	for _, c := range cd.Extra {
		seen[c]++
	}
	for c := range cd.Changed {
		seen[c]++
	}
	for c, n := range seen {
		if n != 1 {
			t.Errorf("column %s appears in %d buckets", c, n)
		}
	}
}

func TestCompareTypeEqualityIsTextual(t *testing.T) {
	src := schema.Snapshot{"t": {Columns: map[string]schema.ColumnDef{"n": {Type: "INTEGER"}}, ColumnOrder: []string{"n"}}}
	tgt := schema.Snapshot{"t": {Columns: map[string]schema.ColumnDef{"n": {Type: "INT"}}, ColumnOrder: []string{"n"}}}

	d, err := diff.Compare(src, tgt)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !d.TableChanged("t") {
		t.Errorf("INTEGER vs INT should be a change, got %+v", d.Tables)
	}
}

func TestCompareDefaultDistinguishesAbsentFromEmpty(t *testing.T) {
	src := schema.Snapshot{"t": {Columns: map[string]schema.ColumnDef{"n": {Type: "TEXT", Default: strp("")}}}}
	tgt := schema.Snapshot{"t": {Columns: map[string]schema.ColumnDef{"n": {Type: "TEXT"}}}}

	d, err := diff.Compare(src, tgt)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	cd, ok := d.TableColumns("t")
	if !ok {
		t.Fatalf("empty-string default vs no default not detected")
	}
	if !reflect.DeepEqual(cd.Changed["n"].Changes, []string{"default"}) {
		t.Errorf("Changes = %v, want [default]", cd.Changed["n"].Changes)
	}
}

func TestCompareTableCommentOnlyChange(t *testing.T) {
	src := schema.Snapshot{"t": {Columns: map[string]schema.ColumnDef{"n": {Type: "INT"}}, Comment: "orders header"}}
	tgt := schema.Snapshot{"t": {Columns: map[string]schema.ColumnDef{"n": {Type: "INT"}}, Comment: ""}}

	d, err := diff.Compare(src, tgt)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if !d.TableChanged("t") {
		t.Fatalf("comment-only change not reported")
	}
	cd, ok := d.TableColumns("t")
	if !ok {
		t.Fatalf("changed table must carry a columns entry")
	}
	if !cd.Empty() {
		t.Errorf("columns entry should be empty, got %+v", cd)
	}
}

func TestCompareColumnsEntryIffChanged(t *testing.T) {
	src := schema.Snapshot{
		"same":    {Columns: map[string]schema.ColumnDef{"a": {Type: "INT"}}},
		"changed": {Columns: map[string]schema.ColumnDef{"a": {Type: "INT"}, "b": {Type: "TEXT"}}},
		"gone":    {Columns: map[string]schema.ColumnDef{"a": {Type: "INT"}}},
	}
	tgt := schema.Snapshot{
		"same":    {Columns: map[string]schema.ColumnDef{"a": {Type: "INT"}}},
		"changed": {Columns: map[string]schema.ColumnDef{"a": {Type: "INT"}}},
	}

	d, err := diff.Compare(src, tgt)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	for _, table := range d.Tables.Changed {
		if _, ok := d.Columns[table]; !ok {
			t.Errorf("changed table %s missing a columns entry", table)
		}
	}
	for table := range d.Columns {
		if !d.TableChanged(table) {
			t.Errorf("columns entry %s without changed listing", table)
		}
	}
	if _, ok := d.Columns["gone"]; ok {
		t.Errorf("missing table must not appear in Columns")
	}
}

func TestCompareRejectsMalformedSnapshot(t *testing.T) {
	bad := schema.Snapshot{"broken": {Columns: nil}}
	if _, err := diff.Compare(bad, schema.Snapshot{}); !errors.Is(err, schema.ErrMalformedSnapshot) {
		t.Errorf("err = %v, want ErrMalformedSnapshot", err)
	}
	if _, err := diff.Compare(schema.Snapshot{}, bad); !errors.Is(err, schema.ErrMalformedSnapshot) {
		t.Errorf("err = %v, want ErrMalformedSnapshot", err)
	}
}
