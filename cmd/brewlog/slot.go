package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var slotCmd = &cobra.Command{
	Use:   "slot",
	Short: "Manage fermenter slots",
}

var slotAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an empty fermenter slot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := mgr.AddSlot()
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (slot %d)\n", name, len(mgr.Slots()))
		return nil
	},
}

var slotRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the last slot, if it is empty",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := mgr.RemoveLastSlot(); err != nil {
			return err
		}
		fmt.Printf("Removed. %d slots remain\n", len(mgr.Slots()))
		return nil
	},
}

var slotRenameCmd = &cobra.Command{
	Use:   "rename <slot> <name>",
	Short: "Rename a slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseSlotArg(args[0])
		if err != nil {
			return err
		}
		if err := mgr.RenameSlot(idx, args[1]); err != nil {
			return err
		}
		fmt.Printf("Slot %d is now %q\n", idx+1, args[1])
		return nil
	},
}

func init() {
	slotCmd.AddCommand(slotAddCmd)
	slotCmd.AddCommand(slotRemoveCmd)
	slotCmd.AddCommand(slotRenameCmd)
}
