// Command: pinv init
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration, data, and template directories",
	Long: `Init creates the configuration directory with a default config.yaml,
the data directory with an empty inventory database, and the user
template directory. Running init on an existing installation is safe.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	backend, config, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	if err := os.MkdirAll(config.TemplateDir, 0o755); err != nil {
		return fmt.Errorf("creating template dir: %w", err)
	}

	if flagJSON {
		return printJSON(config)
	}

	fmt.Printf("data dir:     %s\n", config.DataDir)
	fmt.Printf("template dir: %s\n", config.TemplateDir)
	return nil
}
