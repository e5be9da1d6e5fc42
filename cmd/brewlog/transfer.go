package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <from-slot> <to-slot>",
	Short: "Move a brew to another empty slot, recording any volume loss",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := parseSlotArg(args[0])
		if err != nil {
			return err
		}
		dest, err := parseSlotArg(args[1])
		if err != nil {
			return err
		}
		loss, _ := cmd.Flags().GetFloat64("loss")

		if err := mgr.Transfer(src, dest, loss); err != nil {
			return err
		}

		s, err := mgr.Slot(dest)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(s.Brew)
			return nil
		}
		fmt.Printf("Transferred to slot %d (%s). Volume now %gL\n", dest+1, s.Name, s.Brew.Volume)
		return nil
	},
}

var rackCmd = &cobra.Command{
	Use:   "rack <slot> <vessel>",
	Short: "Rack a brew into a new vessel in the same slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseSlotArg(args[0])
		if err != nil {
			return err
		}
		loss, _ := cmd.Flags().GetFloat64("loss")

		if err := mgr.Rack(idx, args[1], loss); err != nil {
			return err
		}

		s, err := mgr.Slot(idx)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(s.Brew)
			return nil
		}
		fmt.Printf("Racked into %s. Volume now %gL\n", s.Brew.Vessel, s.Brew.Volume)
		return nil
	},
}

func init() {
	transferCmd.Flags().Float64("loss", 0, "volume lost in transfer, in liters")
	rackCmd.Flags().Float64("loss", 0, "volume lost in racking, in liters")
}
