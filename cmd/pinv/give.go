// Command: pinv give
package main

import (
	"github.com/spf13/cobra"
)

var giveAmount int64

var giveCmd = &cobra.Command{
	Use:   "give KEY",
	Short: "Add stock to an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runGive,
}

func init() {
	giveCmd.Flags().Int64VarP(&giveAmount, "amount", "n", 1, "how many units to add")
}

func runGive(cmd *cobra.Command, args []string) error {
	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	entry, err := backend.AdjustQuantity(args[0], giveAmount)
	if err != nil {
		return err
	}

	return printEntry(entry)
}
