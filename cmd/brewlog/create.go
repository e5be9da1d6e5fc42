package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/brewlog/internal/cellar"
	"github.com/alfredjeanlab/brewlog/internal/model"
)

var createCmd = &cobra.Command{
	Use:   "create <slot> <name>",
	Short: "Start a new brew in an empty slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseSlotArg(args[0])
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		ogStr, _ := cmd.Flags().GetString("og")
		volume, _ := cmd.Flags().GetFloat64("volume")
		recipe, _ := cmd.Flags().GetString("recipe")
		notes, _ := cmd.Flags().GetString("notes")

		og, err := model.ParseGravity(ogStr)
		if err != nil {
			return err
		}

		brew, err := mgr.CreateBrew(idx, cellar.CreateParams{
			Name:     args[1],
			Category: category,
			OG:       og,
			Volume:   volume,
			Recipe:   recipe,
			Notes:    notes,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(brew)
			return nil
		}
		fmt.Printf("Started %s (%s) in slot %d\n", brew.Name, brew.ID, idx+1)
		return nil
	},
}

func init() {
	createCmd.Flags().StringP("category", "c", "", "brew category (default: first configured)")
	createCmd.Flags().StringP("og", "g", "", "original gravity, e.g. 1.050 (required)")
	createCmd.Flags().Float64P("volume", "v", 0, "starting volume in liters (required)")
	createCmd.Flags().StringP("recipe", "r", "", "recipe reference")
	createCmd.Flags().StringP("notes", "n", "", "free-form notes")
	_ = createCmd.MarkFlagRequired("og")
	_ = createCmd.MarkFlagRequired("volume")
}
