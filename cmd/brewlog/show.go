package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <slot>",
	Short: "Show a slot's brew in full, including its recent log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseSlotArg(args[0])
		if err != nil {
			return err
		}
		s, err := mgr.Slot(idx)
		if err != nil {
			return err
		}
		if s.Empty() {
			return fmt.Errorf("slot %d (%s) is empty", idx+1, s.Name)
		}

		if jsonOutput {
			printJSON(s)
			return nil
		}
		printBrewDetail(s.Name, s.Brew)

		entries := s.Brew.Log.Entries
		if tail, _ := cmd.Flags().GetInt("tail"); tail > 0 && len(entries) > tail {
			entries = entries[len(entries)-tail:]
		}
		fmt.Println()
		printEventTable(entries)
		return nil
	},
}

func init() {
	showCmd.Flags().Int("tail", 10, "number of recent log entries to show (0 = all)")
}
