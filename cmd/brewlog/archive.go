package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/brewlog/internal/cellar"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <slot>",
	Short: "Finish a brew: snapshot it into history and free the slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseSlotArg(args[0])
		if err != nil {
			return err
		}

		record, err := mgr.Archive(idx)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(record)
			return nil
		}
		fmt.Printf("Archived %s (%s) after %s\n", record.Name, record.ID, cellar.ArchiveElapsed(record))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear <slot>",
	Short: "Discard a slot's brew without archiving it (requires --yes)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseSlotArg(args[0])
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")

		if err := mgr.ClearSlot(idx, yes); err != nil {
			return err
		}
		fmt.Printf("Cleared slot %d\n", idx+1)
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolP("yes", "y", false, "confirm discarding the brew and its log")
}
