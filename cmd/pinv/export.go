// Command: pinv export
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openapeshop/pinv/internal/csvio"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export CATAGORY",
	Short: "Export a catagory's entries as CSV",
	Long: `Export writes all entries of a catagory as CSV with a
key,location,quantity header followed by the catagory's fields in
declaration order. Null values export as blank cells.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output CSV file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	cat, err := backend.Catagory(args[0])
	if err != nil {
		return err
	}

	entries, err := backend.Entries(cat.ID)
	if err != nil {
		return err
	}

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating %q: %w", exportOut, err)
		}
		defer f.Close()
		out = f
	}

	return csvio.Export(out, cat, entries)
}
