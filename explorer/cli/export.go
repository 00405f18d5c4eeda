package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx"

	"github.com/batchatco/go-netcdf-explorer/explorer"
)

// Spreadsheet programs reject longer sheet names.
const maxSheetName = 31

var ErrNoOutput = errors.New("ncexplore: no output file given (--out)")

func (cfg *Cfg) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE VARIABLE",
		Short: "Write one slice of a variable to a spreadsheet.",
		Long: `export writes the selected layer of VARIABLE to the .xlsx file given with --out.
The first sheet holds the grid with its row and column labels; when the variable
has layer dimensions a second sheet records which layer was written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cfg.GetString("out")
			if out == "" {
				return ErrNoOutput
			}
			tree, view, err := cfg.view(args, true)
			if err != nil {
				return err
			}
			defer tree.Close()
			f, err := exportView(view)
			if err != nil {
				return err
			}
			if err := f.Save(out); err != nil {
				return fmt.Errorf("ncexplore: writing %s: %v", out, err)
			}
			cmd.Printf("wrote %s to %s\n", view.Variable().Path(), out)
			return nil
		},
		DisableAutoGenTag: true,
	}
}

func sheetName(name string) string {
	r := []rune(name)
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}
	return string(r)
}

// exportView puts the selected layer of view into a new workbook. Numeric cells
// are stored as numbers, everything else as text.
func exportView(view *explorer.View) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName(view.Variable().Name))
	if err != nil {
		return nil, err
	}

	row := sheet.AddRow()
	row.AddCell()
	for c := 0; c < view.Cols(); c++ {
		label, err := view.ColLabel(c)
		if err != nil {
			return nil, err
		}
		row.AddCell().SetString(label)
	}
	for r := 0; r < view.Rows(); r++ {
		label, err := view.RowLabel(r)
		if err != nil {
			return nil, err
		}
		row = sheet.AddRow()
		row.AddCell().SetString(label)
		for c := 0; c < view.Cols(); c++ {
			cell := row.AddCell()
			f, ok, err := view.Float(r, c)
			if err != nil {
				return nil, err
			}
			if ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
				cell.SetFloat(f)
				continue
			}
			text, err := view.Cell(r, c)
			if err != nil {
				return nil, err
			}
			cell.SetString(text)
		}
	}

	if view.NumLayers() == 0 {
		return file, nil
	}
	sheet, err = file.AddSheet("selection")
	if err != nil {
		return nil, err
	}
	for i, pos := range view.Layers() {
		name, err := view.LayerName(i)
		if err != nil {
			return nil, err
		}
		label, err := view.LayerLabel(i)
		if err != nil {
			return nil, err
		}
		row := sheet.AddRow()
		row.AddCell().SetString(name)
		row.AddCell().SetInt(pos)
		row.AddCell().SetString(label)
	}
	return file, nil
}
