package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// CellarsConfig holds all named cellar profiles and tracks which one is
// active. Profiles let one machine track separate cellars (say, home and
// the garage) without juggling --dir flags.
type CellarsConfig struct {
	Active  string                   `toml:"active"`
	Cellars map[string]CellarProfile `toml:"cellars"`
}

// CellarProfile is a named data directory.
type CellarProfile struct {
	Dir string `toml:"dir"`
}

func cellarsConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "brewlog")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "cellars.toml"), nil
}

func loadCellarsConfig() (CellarsConfig, error) {
	path, err := cellarsConfigPath()
	if err != nil {
		return CellarsConfig{}, err
	}
	var cfg CellarsConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return CellarsConfig{Cellars: map[string]CellarProfile{}}, nil
		}
		return CellarsConfig{}, err
	}
	if cfg.Cellars == nil {
		cfg.Cellars = map[string]CellarProfile{}
	}
	return cfg, nil
}

func saveCellarsConfig(cfg CellarsConfig) error {
	path, err := cellarsConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// cellarDir resolves a profile name (or the active profile when name is
// empty) to its data directory.
func cellarDir(name string) (string, error) {
	cfg, err := loadCellarsConfig()
	if err != nil {
		return "", err
	}
	if name == "" {
		name = cfg.Active
	}
	if name == "" {
		return "", fmt.Errorf("no cellar profile named and none active")
	}
	p, ok := cfg.Cellars[name]
	if !ok {
		return "", fmt.Errorf("unknown cellar %q", name)
	}
	return p.Dir, nil
}

var cellarsCmd = &cobra.Command{
	Use:   "cellars",
	Short: "Manage named cellar profiles",
	// Profile management never touches brew data, so skip opening the
	// manager.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var cellarsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cellar profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCellarsConfig()
		if err != nil {
			return err
		}
		names := make([]string, 0, len(cfg.Cellars))
		for name := range cfg.Cellars {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDIR\tACTIVE")
		for _, name := range names {
			active := ""
			if name == cfg.Active {
				active = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", name, cfg.Cellars[name].Dir, active)
		}
		return w.Flush()
	},
}

var cellarsAddCmd = &cobra.Command{
	Use:   "add <name> <dir>",
	Short: "Add a cellar profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCellarsConfig()
		if err != nil {
			return err
		}
		dir, err := filepath.Abs(args[1])
		if err != nil {
			return err
		}
		cfg.Cellars[args[0]] = CellarProfile{Dir: dir}
		if cfg.Active == "" {
			cfg.Active = args[0]
		}
		return saveCellarsConfig(cfg)
	},
}

var cellarsUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a cellar profile the default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCellarsConfig()
		if err != nil {
			return err
		}
		if _, ok := cfg.Cellars[args[0]]; !ok {
			return fmt.Errorf("unknown cellar %q", args[0])
		}
		cfg.Active = args[0]
		return saveCellarsConfig(cfg)
	},
}

var cellarsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a cellar profile (the data directory is untouched)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCellarsConfig()
		if err != nil {
			return err
		}
		if _, ok := cfg.Cellars[args[0]]; !ok {
			return fmt.Errorf("unknown cellar %q", args[0])
		}
		delete(cfg.Cellars, args[0])
		if cfg.Active == args[0] {
			cfg.Active = ""
		}
		return saveCellarsConfig(cfg)
	},
}

func init() {
	cellarsCmd.AddCommand(cellarsListCmd)
	cellarsCmd.AddCommand(cellarsAddCmd)
	cellarsCmd.AddCommand(cellarsUseCmd)
	cellarsCmd.AddCommand(cellarsRemoveCmd)
}
