// Command: pinv delete
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete KEY",
	Short: "Delete an entry",
	Long: `Delete removes an entry and its field values. The entry is shown and
a confirmation is asked unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	entry, err := backend.Entry(args[0])
	if err != nil {
		return err
	}

	if !flagYes {
		fmt.Println(entry)
	}
	if !confirm(fmt.Sprintf("delete entry %q", entry.Key)) {
		fmt.Println("aborted")
		return nil
	}

	if err := backend.DeleteEntry(entry.Key); err != nil {
		return err
	}

	fmt.Printf("deleted %s\n", entry.Key)
	return nil
}
