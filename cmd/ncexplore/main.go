// Command ncexplore lists the contents of netCDF files and prints or exports
// slices of their variables.
package main

import (
	"fmt"
	"os"

	"github.com/batchatco/go-netcdf-explorer/explorer/cli"
)

func main() {
	cfg := cli.InitializeConfig()
	if err := cfg.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
