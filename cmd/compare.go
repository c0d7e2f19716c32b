package cmd

import (
	"fmt"
	"log"

	"schema-sync/internal/dialect"
	"schema-sync/internal/diff"
	"schema-sync/internal/report"
	"schema-sync/internal/schema"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <conn-id>",
	Short: "Compare the source and target schemas of a connection pair",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := GetConnection(args[0])
		if err != nil {
			return err
		}

		src, tgt, err := captureBoth(conn)
		if err != nil {
			return err
		}

		d, err := diff.Compare(src, tgt)
		if err != nil {
			return err
		}

		printReport(conn, report.Build(src, tgt, d, conn.ExcludeTables))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(compareCmd)
}

// captureBoth snapshots the source and target sides of a pair.
func captureBoth(conn *Connection) (schema.Snapshot, schema.Snapshot, error) {
	src, err := captureEndpoint(conn.Source, "source")
	if err != nil {
		return nil, nil, err
	}
	tgt, err := captureEndpoint(conn.Target, "target")
	if err != nil {
		return nil, nil, err
	}
	return src, tgt, nil
}

func captureEndpoint(ep Endpoint, side string) (schema.Snapshot, error) {
	db, schemaName, err := openEndpoint(ep)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", side, err)
	}
	defer db.Close()

	d := dialect.GetDialect(ep.Driver)
	log.Printf("Capturing %s schema (%s/%s)...", side, ep.Driver, schemaName)

	count := 0
	snap, err := schema.Capture(db, d, schemaName, func(string) { count++ })
	if err != nil {
		return nil, fmt.Errorf("%s: %w", side, err)
	}
	log.Printf("Captured %d %s tables", count, side)
	return snap, nil
}

func printReport(conn *Connection, r report.Report) {
	fmt.Printf("\n📊 Comparison Report: %s\n", conn.ID)
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Tables differing : %d\n", r.Stats.TableDiff)
	fmt.Printf("Columns differing: %d\n", r.Stats.ColumnDiff)
	fmt.Printf("Missing in target: %d\n", r.Stats.MissingTables)
	fmt.Printf("Extra in target  : %d\n", r.Stats.ExtraTables)

	fmt.Println("\nSource tables:")
	printTables(r.SourceTables)
	fmt.Println("\nTarget tables:")
	printTables(r.TargetTables)
}

func printTables(tables []report.TableView) {
	for _, t := range tables {
		marker := " "
		if t.Status != "" {
			marker = "!"
		}
		fmt.Printf("[%s] %-30s %s\n", marker, t.Name, t.Status)
		for _, c := range t.Columns {
			if c.Status == "normal" {
				continue
			}
			fmt.Printf("      └ %-26s %-20s %s\n", c.Name, c.Type, c.Status)
		}
	}
}
