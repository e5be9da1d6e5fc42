package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/brewlog/internal/cellar"
	"github.com/alfredjeanlab/brewlog/internal/clock"
	"github.com/alfredjeanlab/brewlog/internal/config"
	"github.com/alfredjeanlab/brewlog/internal/events"
	"github.com/alfredjeanlab/brewlog/internal/store/file"
	"github.com/alfredjeanlab/brewlog/internal/ui"
)

var (
	jsonOutput bool
	dataDir    string
	cellarName string

	appCfg *config.Config
	mgr    *cellar.Manager
)

var rootCmd = &cobra.Command{
	Use:   "brewlog",
	Short: "Track fermentation batches across your fermenter slots",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ShouldUseColor() || jsonOutput {
			ui.ForceNoColor()
		}
		return openCellar()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if mgr != nil {
			if err := mgr.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save on exit: %v\n", err)
			}
		}
	},
}

// openCellar resolves the data directory (flag > named cellar > env >
// default), loads the brew configuration, and opens the manager.
func openCellar() error {
	var err error
	appCfg, err = config.Load()
	if err != nil {
		return err
	}
	if dataDir == "" {
		if cellarName != "" {
			dir, err := cellarDir(cellarName)
			if err != nil {
				return err
			}
			dataDir = dir
		} else if dir, err := cellarDir(""); err == nil {
			// An active profile applies when nothing more specific is given.
			dataDir = dir
		}
	}
	if dataDir != "" {
		appCfg.DataDir = dataDir
	}
	if err := appCfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	brewCfg, err := config.LoadBrewConfig(appCfg.BrewConfigPath())
	if err != nil {
		return err
	}
	clk, err := clock.New(brewCfg.LocalTimezone)
	if err != nil {
		return err
	}

	st := file.New(appCfg.SlotsPath(), appCfg.ArchivePath())
	mgr, err = cellar.New(brewCfg, clk, st, &events.NoopPublisher{}, appCfg.SlotCount)
	if err != nil {
		return err
	}
	for _, warning := range mgr.Warnings() {
		fmt.Fprintln(os.Stderr, ui.RenderWarn("Warning: "+warning))
	}
	return nil
}

// parseSlotArg converts a 1-based slot argument to a 0-based index.
func parseSlotArg(arg string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil || n < 1 {
		return 0, fmt.Errorf("invalid slot number %q", arg)
	}
	return n - 1, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "data directory (overrides BREWLOG_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&cellarName, "cellar", "", "named cellar profile to use")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(rackCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(slotCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cellarsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
