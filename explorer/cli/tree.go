package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/batchatco/go-netcdf-explorer/explorer"
	"github.com/batchatco/go-netcdf-explorer/explorer/api"
	"github.com/batchatco/go-netcdf-explorer/explorer/buffer"
)

func (cfg *Cfg) treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree FILE",
		Short: "List the groups and variables of a file.",
		Long: `tree prints every group of FILE with its variables, their types, dimensions,
number of values and size in memory once loaded. Groups that could not be read
completely are listed with the error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := cfg.open(args[0])
			if err != nil {
				return err
			}
			defer tree.Close()
			return printTree(cmd.OutOrStdout(), tree, cfg.GetBool("attrs"))
		},
		DisableAutoGenTag: true,
	}
}

func plural(n int, what string) string {
	if n == 1 {
		return "1 " + what
	}
	return humanize.Comma(int64(n)) + " " + what + "s"
}

func dimensions(dims []api.Dimension) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("%s=%d", d.Name, d.Size)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// size is the memory a loaded variable takes. Strings vary and are shown as "-".
func size(v *explorer.Variable) string {
	if v.Type().Size() == 0 {
		return "-"
	}
	return humanize.Bytes(v.Len() * uint64(v.Type().Size()))
}

func printAttributes(w io.Writer, indent string, attrs api.AttributeMap) {
	for _, key := range attrs.Keys() {
		val, _ := attrs.Get(key)
		s, err := buffer.FormatValue(val)
		if err != nil {
			s = fmt.Sprintf("<%v>", err)
		}
		fmt.Fprintf(w, "%s:%s = %s\n", indent, key, s)
	}
}

func printTree(w io.Writer, tree *explorer.Tree, attrs bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	err := tree.Walk(func(g *explorer.Group) error {
		fmt.Fprintf(tw, "%s (%s, %s)\n", g.Path,
			plural(len(g.Variables), "variable"), plural(len(g.Groups), "group"))
		if g.Err != nil {
			fmt.Fprintf(tw, "  error: %v\n", g.Err)
		}
		if attrs {
			printAttributes(tw, "  ", g.Attributes)
		}
		for _, v := range g.Variables {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", v.Name, v.Type(), dimensions(v.Dimensions()),
				plural(int(v.Len()), "value"), size(v))
			if attrs {
				printAttributes(tw, "    ", v.Attributes)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return tw.Flush()
}
