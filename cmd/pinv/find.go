// Command: pinv find
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openapeshop/pinv/internal/keys"
	"github.com/openapeshop/pinv/pkg/types"
)

var findCmd = &cobra.Command{
	Use:   "find KEY",
	Short: "Look up an entry by its key",
	Long: `Find looks up the entry whose key matches the given base64 payload,
typically scanned off a printed label.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	if !keys.Valid(args[0]) {
		return fmt.Errorf("%w: %q", types.ErrInvalidKey, args[0])
	}

	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	entry, err := backend.Entry(args[0])
	if err != nil {
		return err
	}

	return printEntry(entry)
}
