package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/brewlog/internal/cellar"
	"github.com/alfredjeanlab/brewlog/internal/model"
)

// gravityFlagIfChanged parses a gravity flag like "1.050", rejecting typo
// values before the manager sees them.
func gravityFlagIfChanged(cmd *cobra.Command, name string) (*float64, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	s, _ := cmd.Flags().GetString(name)
	g, err := model.ParseGravity(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &g, nil
}

var metricsCmd = &cobra.Command{
	Use:   "metrics <slot>",
	Short: "Record gravity, volume, pH, or temperature readings",
	Long: `Record one or more readings against a slot's brew. Every reading is
validated before any is applied: a batch with one bad value changes nothing.
Each applied reading is logged as its own event.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseSlotArg(args[0])
		if err != nil {
			return err
		}

		og, err := gravityFlagIfChanged(cmd, "og")
		if err != nil {
			return err
		}
		fg, err := gravityFlagIfChanged(cmd, "fg")
		if err != nil {
			return err
		}
		p := cellar.MetricsParams{
			OG:     og,
			FG:     fg,
			Volume: floatFlagIfChanged(cmd, "volume"),
			PH:     floatFlagIfChanged(cmd, "ph"),
			Temp:   floatFlagIfChanged(cmd, "temp"),
		}
		if err := mgr.UpdateMetrics(idx, p); err != nil {
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
		b := s.Brew
		fmt.Printf("Recorded. OG %s, FG %s, ABV %s, attenuation %s\n",
			fmtGravity(b.OG), fmtOptGravity(b.FG), fmtABV(b), fmtAttenuation(b))
		return nil
	},
}

func init() {
	metricsCmd.Flags().String("og", "", "corrected original gravity, e.g. 1.050")
	metricsCmd.Flags().String("fg", "", "final gravity, e.g. 1.010")
	metricsCmd.Flags().Float64("volume", 0, "current volume in liters")
	metricsCmd.Flags().Float64("ph", 0, "pH reading")
	metricsCmd.Flags().Float64("temp", 0, "temperature in Celsius")
}
