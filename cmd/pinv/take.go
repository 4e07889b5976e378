// Command: pinv take
package main

import (
	"github.com/spf13/cobra"
)

var takeAmount int64

var takeCmd = &cobra.Command{
	Use:   "take KEY",
	Short: "Take stock from an entry",
	Long: `Take removes units from an entry's quantity. Taking more than the
entry holds fails and leaves the quantity untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runTake,
}

func init() {
	takeCmd.Flags().Int64VarP(&takeAmount, "amount", "n", 1, "how many units to take")
}

func runTake(cmd *cobra.Command, args []string) error {
	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	entry, err := backend.AdjustQuantity(args[0], -takeAmount)
	if err != nil {
		return err
	}

	return printEntry(entry)
}
