package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcana-cloud/api-contract-tests/config"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the resolved targets",
	Long:  "Prints the targets the suite would run against, after loading the config file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(cfgFile)
		if err != nil {
			return err
		}
		for _, t := range cfg.Targets {
			fmt.Printf("%-16s %s\n", t.Label, t.BaseURL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
