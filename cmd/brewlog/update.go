package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/brewlog/internal/cellar"
)

// stringFlagIfChanged returns the flag value only when the user set it, so
// an omitted flag never clobbers an existing field.
func stringFlagIfChanged(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func floatFlagIfChanged(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

var updateCmd = &cobra.Command{
	Use:   "update <slot>",
	Short: "Change a brew's details (name, category, stage, recipe, notes)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseSlotArg(args[0])
		if err != nil {
			return err
		}

		p := cellar.DetailsParams{
			Name:     stringFlagIfChanged(cmd, "name"),
			Category: stringFlagIfChanged(cmd, "category"),
			Stage:    stringFlagIfChanged(cmd, "stage"),
			Recipe:   stringFlagIfChanged(cmd, "recipe"),
			Notes:    stringFlagIfChanged(cmd, "notes"),
		}
		if err := mgr.UpdateDetails(idx, p); err != nil {
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
		fmt.Printf("Updated slot %d\n", idx+1)
		return nil
	},
}

func init() {
	updateCmd.Flags().String("name", "", "brew name")
	updateCmd.Flags().String("category", "", "brew category")
	updateCmd.Flags().String("stage", "", "brew stage (logged as a stage change)")
	updateCmd.Flags().String("recipe", "", "recipe reference")
	updateCmd.Flags().String("notes", "", "free-form notes")
}
