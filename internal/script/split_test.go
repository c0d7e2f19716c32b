package script_test

import (
	"reflect"
	"testing"

	"schema-sync/internal/script"
)

func TestSplitStatements(t *testing.T) {
	text := `-- schema sync script: demo
-- generated at: 2024-03-01 12:30:00

-- create missing table: orders
CREATE TABLE orders (
    id INTEGER NOT NULL,
    PRIMARY KEY (id)
);

-- sync table structure: items
ALTER TABLE items MODIFY COLUMN price NUMERIC(10,2) NOT NULL;
-- ALTER TABLE items DROP COLUMN legacy;  -- caution: column exists only in target

-- DROP TABLE temp_cache;  -- caution: table exists only in target

-- end of sync script --
`
	got := script.SplitStatements(text)
	want := []string{
		"CREATE TABLE orders (\n    id INTEGER NOT NULL,\n    PRIMARY KEY (id)\n)",
		"ALTER TABLE items MODIFY COLUMN price NUMERIC(10,2) NOT NULL",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitStatements = %#v, want %#v", got, want)
	}
}

func TestSplitStatementsCommentOnlyScript(t *testing.T) {
	text := "-- schema sync script: demo\n\n-- end of sync script --\n"
	if got := script.SplitStatements(text); len(got) != 0 {
		t.Errorf("comment-only script produced statements: %#v", got)
	}
}
