// Command: pinv import
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openapeshop/pinv/internal/csvio"
	"github.com/openapeshop/pinv/internal/keys"
)

var importCmd = &cobra.Command{
	Use:   "import CATAGORY FILE",
	Short: "Import entries into a catagory from CSV",
	Long: `Import reads CSV rows and files each one as an entry under the
catagory. The whole file is validated against the schema before any
entry is written. Rows with a blank key get a freshly generated one;
the keys of all imported entries are printed, one per line.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("opening %q: %w", args[1], err)
	}
	defer f.Close()

	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	cat, err := backend.Catagory(args[0])
	if err != nil {
		return err
	}

	rows, err := csvio.Import(f, cat)
	if err != nil {
		return err
	}

	for _, row := range rows {
		key := row.Key
		if key == "" {
			key = keys.Fresh()
		}
		entry, err := backend.CreateEntry(cat.ID, key, row.Location, row.Quantity, row.Fields)
		if err != nil {
			return fmt.Errorf("importing %q: %w", key, err)
		}
		fmt.Println(entry.Key)
	}
	return nil
}
