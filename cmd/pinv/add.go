// Command: pinv add
package main

import (
	"github.com/spf13/cobra"

	"github.com/openapeshop/pinv/internal/keys"
)

var (
	addCatagory string
	addKey      string
	addLocation string
	addQuantity int64
)

var addCmd = &cobra.Command{
	Use:   "add [FIELD=VALUE...]",
	Short: "Add an entry to a catagory",
	Long: `Add files a new entry under a catagory. The key defaults to a freshly
generated one; pass --key to use the base64 payload scanned off a
printed label. Fields not given on the command line are set to Null.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addCatagory, "catagory", "c", "", "catagory to file the entry under (required)")
	addCmd.Flags().StringVarP(&addKey, "key", "k", "", "entry key (default: freshly generated)")
	addCmd.Flags().StringVarP(&addLocation, "location", "l", "", "physical location of the entry")
	addCmd.Flags().Int64VarP(&addQuantity, "quantity", "q", 1, "initial quantity")
	addCmd.MarkFlagRequired("catagory")
}

func runAdd(cmd *cobra.Command, args []string) error {
	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	cat, err := backend.Catagory(addCatagory)
	if err != nil {
		return err
	}

	fields, err := parseFieldArgs(cat, args)
	if err != nil {
		return err
	}

	key := addKey
	if key == "" {
		key = keys.Fresh()
	}

	entry, err := backend.CreateEntry(cat.ID, key, addLocation, addQuantity, fields)
	if err != nil {
		return err
	}

	return printEntry(entry)
}
