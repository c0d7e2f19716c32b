package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var connectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "List configured connection pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		connections, err := GetConnections()
		if err != nil {
			return err
		}
		if len(connections) == 0 {
			fmt.Println("No connections configured. Add a connections: list to schema-sync.yaml.")
			return nil
		}

		for _, c := range connections {
			fmt.Printf("%-20s %s -> %s", c.ID, c.Source.Driver, c.Target.Driver)
			if len(c.ExcludeTables) > 0 {
				fmt.Printf("  (excludes: %s)", strings.Join(c.ExcludeTables, ", "))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(connectionsCmd)
}
