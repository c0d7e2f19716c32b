package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/viper"
)

// Endpoint describes one side of a connection pair.
type Endpoint struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Schema string `mapstructure:"schema"`
}

// Connection is one configured source/target pair. ExcludeTables holds
// exclusion patterns: exact names or trailing-* prefix wildcards.
type Connection struct {
	ID            string   `mapstructure:"id"`
	Source        Endpoint `mapstructure:"source"`
	Target        Endpoint `mapstructure:"target"`
	ExcludeTables []string `mapstructure:"exclude_tables"`
}

// GetConnections returns every configured connection pair.
func GetConnections() ([]Connection, error) {
	var connections []Connection
	if err := viper.UnmarshalKey("connections", &connections); err != nil {
		return nil, fmt.Errorf("failed to parse connections config: %w", err)
	}
	return connections, nil
}

// GetConnection looks up a connection pair by id.
func GetConnection(id string) (*Connection, error) {
	connections, err := GetConnections()
	if err != nil {
		return nil, err
	}
	for i := range connections {
		if connections[i].ID == id {
			return &connections[i], nil
		}
	}
	return nil, fmt.Errorf("no connection with id %q in config", id)
}

// openEndpoint opens one side of a pair and resolves its effective schema.
func openEndpoint(ep Endpoint) (*sql.DB, string, error) {
	db, err := sql.Open(ep.Driver, ep.DSN)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to connect to db: %w", err)
	}

	schemaName := ep.Schema
	if schemaName == "" {
		switch ep.Driver {
		case "mysql":
			if err := db.QueryRow("SELECT DATABASE()").Scan(&schemaName); err != nil {
				db.Close()
				return nil, "", fmt.Errorf("failed to get database name: %w", err)
			}
		case "oracle":
			if err := db.QueryRow("SELECT USER FROM DUAL").Scan(&schemaName); err != nil {
				db.Close()
				return nil, "", fmt.Errorf("failed to get schema owner: %w", err)
			}
		case "sqlserver", "mssql":
			schemaName = "dbo"
		default:
			schemaName = "public"
		}
	}

	if schemaName == "" {
		db.Close()
		return nil, "", fmt.Errorf("no schema selected in DSN (set schema in config)")
	}

	return db, schemaName, nil
}
