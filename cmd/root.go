package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "schema-sync",
	Short: "Compare relational schemas and generate sync scripts",
	Long: `
  ____   ____ _   _ _____ __  __    _        ______   ___   _  ____
 / ___| / ___| | | | ____|  \/  |  / \      / ___\ \ / / \ | |/ ___|
 \___ \| |   | |_| |  _| | |\/| | / _ \     \___ \\ V /|  \| | |
  ___) | |___|  _  | |___| |  | |/ ___ \     ___) || | | |\  | |___
 |____/ \____|_| |_|_____|_|  |_/_/   \_\   |____/ |_| |_| \_|\____|

SCHEMA SYNC - Database Structure Comparator & Script Generator

Compares the table structure of a source and a target database, reports
missing/extra/changed tables and columns, and generates a forward DDL
script that brings the target in line with the source.
`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./schema-sync.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("schema-sync")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
