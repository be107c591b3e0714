package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scoresync/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage scoresync configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the commented default configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, h, err := setup()
		if err != nil {
			return err
		}

		path := h.ConfigPath()
		if len(args) == 1 {
			path = args[0]
		} else if err := h.EnsureExists(); err != nil {
			return err
		}

		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
