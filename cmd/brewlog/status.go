package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the fermenter dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		slots := mgr.Slots()
		if jsonOutput {
			printJSON(slots)
			return nil
		}
		printSlotTable(slots)
		return nil
	},
}
