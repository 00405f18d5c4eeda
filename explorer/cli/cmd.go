// Package cli is the ncexplore command line: it lists the contents of a netCDF file
// and prints or exports one 2D slice of a variable.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/batchatco/go-netcdf-explorer/explorer"
	"github.com/batchatco/go-netcdf-explorer/explorer/native"
	"github.com/batchatco/go-netcdf-explorer/internal"
)

// Cfg holds configuration information and the command tree that reads it.
type Cfg struct {
	*viper.Viper
	Root *cobra.Command
}

type option struct {
	name, usage, shorthand string
	defaultVal             any
	flagsets               []*pflag.FlagSet
}

// InitializeConfig builds the command tree and binds its flags to a fresh
// configuration. Configuration may also come from a file (--config) or from
// environment variables named NCEXPLORE_<option>, with dashes as underscores.
func InitializeConfig() *Cfg {
	cfg := &Cfg{Viper: viper.New()}

	cfg.Root = &cobra.Command{
		Use:   "ncexplore",
		Short: "Explore the contents of netCDF files.",
		Long: `ncexplore lists the groups and variables of a netCDF file and shows any variable
as a 2D grid. Variables with more than two dimensions are shown one layer at a time;
the outer dimensions select the layer. Rows and columns are labelled from coordinate
variables when the file has them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return cfg.setConfig() },
	}
	treeCmd := cfg.treeCmd()
	showCmd := cfg.showCmd()
	layersCmd := cfg.layersCmd()
	exportCmd := cfg.exportCmd()
	cfg.Root.AddCommand(treeCmd, showCmd, layersCmd, exportCmd)

	selecting := []*pflag.FlagSet{showCmd.Flags(), layersCmd.Flags(), exportCmd.Flags()}
	options := []option{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "backend",
			usage: `
              backend selects the reader: "native" reads netCDF-3 and netCDF-4
              files, "classic" reads netCDF-3 files only.`,
			shorthand:  "b",
			defaultVal: explorer.DefaultBackend,
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "log-level",
			usage: `
              log-level sets the amount of logging, from 0 (fatal only) to 3
              (informational).`,
			defaultVal: int(internal.LogLevelDefault),
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "attrs",
			usage: `
              attrs adds group and variable attributes to the tree.`,
			shorthand:  "a",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{treeCmd.Flags()},
		},
		{
			name: "group",
			usage: `
              group is the path of the group holding the variable.`,
			shorthand:  "g",
			defaultVal: "/",
			flagsets:   selecting,
		},
		{
			name: "layer",
			usage: `
              layer selects the index of each layer dimension, outermost first.
              Missing trailing indices are 0.`,
			shorthand:  "l",
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{showCmd.Flags(), exportCmd.Flags()},
		},
		{
			name: "max-rows",
			usage: `
              max-rows limits the number of rows printed. 0 prints all rows.`,
			defaultVal: 20,
			flagsets:   []*pflag.FlagSet{showCmd.Flags()},
		},
		{
			name: "max-cols",
			usage: `
              max-cols limits the number of columns printed. 0 prints all columns.`,
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{showCmd.Flags()},
		},
		{
			name: "stats",
			usage: `
              stats prints the minimum, maximum, mean and standard deviation of
              the slice after the grid.`,
			shorthand:  "s",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{showCmd.Flags()},
		},
		{
			name: "out",
			usage: `
              out is the spreadsheet file the slice is written to.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{exportCmd.Flags()},
		},
	}

	cfg.SetEnvPrefix("NCEXPLORE")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // The flag is created once and shared.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case []int:
				set.IntSliceP(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
	return cfg
}

// setConfig reads the configuration file, if there is one, and applies the log level.
func (cfg *Cfg) setConfig() error {
	if cfgpath := cfg.GetString("config"); cfgpath != "" {
		cfg.SetConfigFile(cfgpath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("ncexplore: problem reading configuration file: %v", err)
		}
	}
	level, err := cast.ToIntE(cfg.Get("log-level"))
	if err != nil {
		return fmt.Errorf("ncexplore: log-level: %v", err)
	}
	if level < int(internal.LevelMin) || level > int(internal.LevelMax) {
		return fmt.Errorf("ncexplore: log-level %d is outside %d..%d", level,
			internal.LevelMin, internal.LevelMax)
	}
	explorer.SetLogLevel(level)
	native.SetLogLevel(level)
	return nil
}

// layers returns the configured layer indices. Environment variables and
// configuration files may give them as a comma or space separated string.
func (cfg *Cfg) layers() ([]int, error) {
	v := cfg.Get("layer")
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok {
		v = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	}
	layers, err := cast.ToIntSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("ncexplore: layer: %v", err)
	}
	return layers, nil
}

func (cfg *Cfg) open(path string) (*explorer.Tree, error) {
	return explorer.Open(path, explorer.WithBackend(cfg.GetString("backend")))
}

// view opens the variable named by args and selects the configured layer.
// The caller closes the returned tree.
func (cfg *Cfg) view(args []string, selectLayer bool) (*explorer.Tree, *explorer.View, error) {
	tree, err := cfg.open(args[0])
	if err != nil {
		return nil, nil, err
	}
	view, err := func() (*explorer.View, error) {
		v, err := tree.Find(cfg.GetString("group"), args[1])
		if err != nil {
			return nil, err
		}
		view, err := v.Open()
		if err != nil {
			return nil, err
		}
		if !selectLayer {
			return view, nil
		}
		layers, err := cfg.layers()
		if err != nil {
			return nil, err
		}
		if len(layers) > view.NumLayers() {
			return nil, fmt.Errorf("ncexplore: %d layer indices given, %s has %d layer dimensions",
				len(layers), v.Path(), view.NumLayers())
		}
		for i, l := range layers {
			if err := view.SetLayer(i, l); err != nil {
				name, _ := view.LayerName(i)
				return nil, fmt.Errorf("ncexplore: layer %s: %w", name, err)
			}
		}
		return view, nil
	}()
	if err != nil {
		tree.Close()
		return nil, nil, err
	}
	return tree, view, nil
}
