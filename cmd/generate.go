package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"schema-sync/internal/diff"
	"schema-sync/internal/script"

	"github.com/spf13/cobra"
)

var (
	genTables     []string
	genColumns    []string
	genAllColumns bool
	genOutput     string
)

var generateCmd = &cobra.Command{
	Use:   "generate <conn-id>",
	Short: "Generate a DDL script that syncs the target structure to the source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := GetConnection(args[0])
		if err != nil {
			return err
		}
		// An empty selection is fine: the script still carries its
		// header and trailer, same as the serve endpoint.
		src, tgt, err := captureBoth(conn)
		if err != nil {
			return err
		}

		d, err := diff.Compare(src, tgt)
		if err != nil {
			return err
		}

		var sel script.Selection
		if genAllColumns {
			sel = script.AllColumns(src, genTables)
		} else {
			sel = script.Selection{Tables: genTables, Columns: parseColumnSpecs(genColumns)}
		}

		text := script.Build(src, tgt, d, sel, conn.ID, time.Now())

		if genOutput == "" {
			fmt.Print(text)
			return nil
		}
		if dir := filepath.Dir(genOutput); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}
		}
		if err := os.WriteFile(genOutput, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write script: %w", err)
		}
		fmt.Printf("Script written to %s\n", genOutput)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringSliceVarP(&genTables, "tables", "t", []string{}, "Tables to include (comma-separated)")
	generateCmd.Flags().StringArrayVarP(&genColumns, "columns", "c", []string{}, "Column selection per table, repeatable: table=col1,col2")
	generateCmd.Flags().BoolVar(&genAllColumns, "all-columns", false, "Select every source column of each selected table")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Write the script to a file instead of stdout")
}

// parseColumnSpecs turns repeated "table=col1,col2" flags into the
// selection map. Malformed entries are skipped.
func parseColumnSpecs(specs []string) map[string][]string {
	columns := map[string][]string{}
	for _, spec := range specs {
		table, list, ok := strings.Cut(spec, "=")
		if !ok || table == "" {
			continue
		}
		for _, col := range strings.Split(list, ",") {
			if col = strings.TrimSpace(col); col != "" {
				columns[table] = append(columns[table], col)
			}
		}
	}
	return columns
}
