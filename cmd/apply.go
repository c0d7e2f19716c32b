package cmd

import (
	"fmt"
	"log"
	"os"

	"schema-sync/internal/script"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
)

var (
	applyFile string
	applyYes  bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <conn-id>",
	Short: "Execute a generated script against the target database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := GetConnection(args[0])
		if err != nil {
			return err
		}

		text, err := os.ReadFile(applyFile)
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}

		statements := script.SplitStatements(string(text))
		if len(statements) == 0 {
			fmt.Println("Script contains no executable statements.")
			return nil
		}

		if !applyYes {
			fmt.Printf("Would execute %d statement(s) on target %q:\n\n", len(statements), conn.ID)
			for i, stmt := range statements {
				fmt.Printf("[%02d] %s;\n", i+1, stmt)
			}
			fmt.Println("\nRe-run with --yes to execute.")
			return nil
		}

		db, _, err := openEndpoint(conn.Target)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}
		defer db.Close()

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		defer func() {
			if tx != nil {
				tx.Rollback()
			}
		}()

		log.Printf("Executing %d statement(s) on %s...", len(statements), conn.ID)

		uiprogress.Start()
		bar := uiprogress.AddBar(len(statements)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Applying: "
		})

		for i, stmt := range statements {
			if _, err := tx.Exec(stmt); err != nil {
				uiprogress.Stop()
				return fmt.Errorf("statement %d failed, rolling back: %w", i+1, err)
			}
			bar.Incr()
		}
		uiprogress.Stop()

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit script transaction: %w", err)
		}
		tx = nil

		log.Println("Script applied successfully!")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVarP(&applyFile, "file", "f", "", "Script file to execute")
	applyCmd.Flags().BoolVar(&applyYes, "yes", false, "Execute without the dry-run listing")
	applyCmd.MarkFlagRequired("file")
}
