// Command: pinv list
package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list CATAGORY",
	Short: "List all entries of a catagory",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	entries, err := backend.Entries(args[0])
	if err != nil {
		return err
	}

	return printEntries(entries)
}
