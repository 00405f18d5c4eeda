package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/batchatco/go-netcdf-explorer/explorer"
	"github.com/batchatco/go-netcdf-explorer/explorer/api"
	"github.com/batchatco/go-netcdf-explorer/explorer/axis"
	"github.com/batchatco/go-netcdf-explorer/explorer/buffer"
)

func (cfg *Cfg) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE VARIABLE",
		Short: "Print one slice of a variable as a grid.",
		Long: `show prints the selected layer of VARIABLE as a grid. The last dimension runs
across the columns and the one before it down the rows; any further dimensions
are layers, chosen with --layer. Rows and columns are labelled with the values of
their coordinate variables, or numbered from 1 when there are none.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, view, err := cfg.view(args, true)
			if err != nil {
				return err
			}
			defer tree.Close()
			w := cmd.OutOrStdout()
			if err := printHeader(w, view); err != nil {
				return err
			}
			if err := printGrid(w, view, cfg.GetInt("max-rows"), cfg.GetInt("max-cols")); err != nil {
				return err
			}
			if cfg.GetBool("stats") {
				return printSummary(w, view)
			}
			return nil
		},
		DisableAutoGenTag: true,
	}
}

func (cfg *Cfg) layersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layers FILE VARIABLE",
		Short: "List how a variable is laid out as rows, columns and layers.",
		Long: `layers prints which dimension of VARIABLE runs down the rows and which across
the columns, followed by each layer dimension with the labels of its layers, in
the order --layer expects them.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, view, err := cfg.view(args, false)
			if err != nil {
				return err
			}
			defer tree.Close()
			return printLayers(cmd.OutOrStdout(), view)
		},
		DisableAutoGenTag: true,
	}
}

func printHeader(w io.Writer, view *explorer.View) error {
	v := view.Variable()
	fmt.Fprintf(w, "%s %s %s\n", v.Path(), v.Type(), dimensions(v.Dimensions()))
	for i, pos := range view.Layers() {
		name, err := view.LayerName(i)
		if err != nil {
			return err
		}
		labels, err := view.LayerLabels(i)
		if err != nil {
			return err
		}
		if len(labels) == 0 {
			fmt.Fprintf(w, "%s is empty\n", name)
			continue
		}
		fmt.Fprintf(w, "%s = %s (%d of %d)\n", name, labels[pos], pos+1, len(labels))
	}
	return nil
}

// limit returns how many of n items to print and whether some are left out.
func limit(n, most int) (int, bool) {
	if most <= 0 || n <= most {
		return n, false
	}
	return most, true
}

func printGrid(w io.Writer, view *explorer.View, maxRows, maxCols int) error {
	rows, moreRows := limit(view.Rows(), maxRows)
	cols, moreCols := limit(view.Cols(), maxCols)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	line := make([]string, 0, cols+2)
	line = append(line, "")
	for c := 0; c < cols; c++ {
		label, err := view.ColLabel(c)
		if err != nil {
			return err
		}
		line = append(line, label)
	}
	if moreCols {
		line = append(line, "...")
	}
	fmt.Fprintln(tw, strings.Join(line, "\t")+"\t")

	for r := 0; r < rows; r++ {
		label, err := view.RowLabel(r)
		if err != nil {
			return err
		}
		line = append(line[:0], label)
		for c := 0; c < cols; c++ {
			cell, err := view.Cell(r, c)
			if err != nil {
				return err
			}
			line = append(line, cell)
		}
		if moreCols {
			line = append(line, "...")
		}
		fmt.Fprintln(tw, strings.Join(line, "\t")+"\t")
	}
	if moreRows {
		fmt.Fprintln(tw, "...\t")
	}
	return tw.Flush()
}

func printSummary(w io.Writer, view *explorer.View) error {
	s, err := view.Summary()
	if errors.Is(err, explorer.ErrNotNumeric) {
		fmt.Fprintln(w, "no statistics: values are not numeric")
		return nil
	}
	if err != nil {
		return err
	}
	f := func(x float64) string {
		out, _ := buffer.Format(api.Float64, x)
		return out
	}
	fmt.Fprintf(w, "count=%d min=%s max=%s mean=%s stddev=%s\n",
		s.Count, f(s.Min), f(s.Max), f(s.Mean), f(s.StdDev))
	return nil
}

func printLayers(w io.Writer, view *explorer.View) error {
	v := view.Variable()
	a := v.Assignment()
	dims := v.Dimensions()
	axisName := func(d int) string {
		if d == axis.None {
			return "none"
		}
		return fmt.Sprintf("%s (%d)", dims[d].Name, dims[d].Size)
	}
	fmt.Fprintf(w, "rows: %s\n", axisName(a.Row))
	fmt.Fprintf(w, "columns: %s\n", axisName(a.Col))
	for i := 0; i < view.NumLayers(); i++ {
		name, err := view.LayerName(i)
		if err != nil {
			return err
		}
		labels, err := view.LayerLabels(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "layer %d: %s (%d): %s\n", i, name, len(labels), strings.Join(labels, ", "))
	}
	return nil
}
