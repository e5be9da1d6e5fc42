package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/brewlog/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the full cellar (slots and history) as JSONL",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		slots := mgr.Slots()
		archive := mgr.ArchiveRecords()
		if err := export.JSONL(out, slots, archive, mgr.Clock().Now()); err != nil {
			return err
		}
		if len(args) == 1 {
			fmt.Fprintf(os.Stderr, "Exported %d slots and %d records to %s\n",
				len(slots), len(archive), args[0])
		}
		return nil
	},
}
