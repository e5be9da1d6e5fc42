package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/brewlog/internal/cellar"
	"github.com/alfredjeanlab/brewlog/internal/model"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and edit archived brews",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived brews, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")

		var records []*model.ArchiveRecord
		for r := range mgr.SearchArchive(search) {
			records = append(records, r)
		}
		if jsonOutput {
			printJSON(records)
			return nil
		}
		printHistoryTable(records)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one archived brew in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := mgr.ArchiveRecordByID(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(record)
			return nil
		}
		printHistoryDetail(record)
		return nil
	},
}

var historyEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Correct fields on an archived brew",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		og, err := gravityFlagIfChanged(cmd, "og")
		if err != nil {
			return err
		}
		fg, err := gravityFlagIfChanged(cmd, "fg")
		if err != nil {
			return err
		}
		p := cellar.EditParams{
			Name:     stringFlagIfChanged(cmd, "name"),
			Category: stringFlagIfChanged(cmd, "category"),
			Stage:    stringFlagIfChanged(cmd, "stage"),
			Recipe:   stringFlagIfChanged(cmd, "recipe"),
			Notes:    stringFlagIfChanged(cmd, "notes"),
			OG:       og,
			FG:       fg,
			Volume:   floatFlagIfChanged(cmd, "volume"),
			PH:       floatFlagIfChanged(cmd, "ph"),
			Temp:     floatFlagIfChanged(cmd, "temp"),
		}
		if err := mgr.EditArchive(args[0], p); err != nil {
			return err
		}

		record, err := mgr.ArchiveRecordByID(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(record)
			return nil
		}
		fmt.Printf("Updated %s\n", record.ID)
		return nil
	},
}

func init() {
	historyListCmd.Flags().StringP("search", "s", "", "filter by name, case-insensitively")
	historyEditCmd.Flags().String("name", "", "brew name")
	historyEditCmd.Flags().String("category", "", "brew category")
	historyEditCmd.Flags().String("stage", "", "final stage")
	historyEditCmd.Flags().String("recipe", "", "recipe reference")
	historyEditCmd.Flags().String("notes", "", "free-form notes")
	historyEditCmd.Flags().String("og", "", "original gravity")
	historyEditCmd.Flags().String("fg", "", "final gravity")
	historyEditCmd.Flags().Float64("volume", 0, "final volume in liters")
	historyEditCmd.Flags().Float64("ph", 0, "final pH")
	historyEditCmd.Flags().Float64("temp", 0, "final temperature in Celsius")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyEditCmd)
}
